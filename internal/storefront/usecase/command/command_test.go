package command

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/lightspace/internal/analyzer"
	catalog "github.com/tair/lightspace/internal/catalog/domain"
	catalogrepo "github.com/tair/lightspace/internal/catalog/repository"
	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/internal/storefront/metrics"
	"github.com/tair/lightspace/internal/storefront/repository"
	"github.com/tair/lightspace/kafka"
	"github.com/tair/lightspace/pkg/task"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.OrderCompletedEvent
	err    error
}

func (p *fakePublisher) PublishOrderCompleted(ctx context.Context, event kafka.OrderCompletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []kafka.OrderCompletedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]kafka.OrderCompletedEvent(nil), p.events...)
}

// blockingAnalyzer never returns until ctx is cancelled or release is closed
type blockingAnalyzer struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingAnalyzer() *blockingAnalyzer {
	return &blockingAnalyzer{started: make(chan struct{}, 8), release: make(chan struct{})}
}

func (a *blockingAnalyzer) Analyze(ctx context.Context, img analyzer.ImageRef) (*analyzer.Result, error) {
	a.started <- struct{}{}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-a.release:
		return analyzer.StubResult(), nil
	}
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(ctx context.Context, img analyzer.ImageRef) (*analyzer.Result, error) {
	return nil, errors.New("model unavailable")
}

type fixture struct {
	repo      *repository.MemorySessionRepository
	tasks     *task.Registry
	metrics   *metrics.Metrics
	publisher *fakePublisher
	session   *domain.Session

	add      *AddToCartHandler
	navigate *NavigateHandler
}

func setup(t *testing.T, overlayDuration time.Duration) *fixture {
	t.Helper()

	repo := repository.NewMemorySessionRepository(time.Hour)
	products := catalogrepo.NewSeedProductRepository()
	tasks := task.NewRegistry()
	t.Cleanup(tasks.Close)
	m := metrics.New(prometheus.NewRegistry(), repo)
	pub := &fakePublisher{}

	s, err := NewCreateSessionHandler(repo, m).Handle(context.Background())
	require.NoError(t, err)

	return &fixture{
		repo:      repo,
		tasks:     tasks,
		metrics:   m,
		publisher: pub,
		session:   s,
		add:       NewAddToCartHandler(repo, products, tasks, overlayDuration, m),
		navigate:  NewNavigateHandler(repo, products, tasks, pub, m),
	}
}

func (f *fixture) get(t *testing.T) *domain.Session {
	t.Helper()
	s, err := f.repo.Get(context.Background(), f.session.ID)
	require.NoError(t, err)
	return s
}

func (f *fixture) nav(t *testing.T, action string) *NavigateResult {
	t.Helper()
	res, err := f.navigate.Handle(context.Background(), NavigateCommand{SessionID: f.session.ID, Action: action})
	require.NoError(t, err)
	return res
}

var shipping = domain.CustomerInfo{
	FullName: "Kim Minji",
	Address:  "12 Teheran-ro",
	City:     "Seoul",
	State:    "Seoul",
	Country:  "Korea",
	ZipCode:  "06234",
}

func TestCreateSession(t *testing.T) {
	f := setup(t, time.Second)

	assert.NotEmpty(t, f.session.ID)
	assert.Equal(t, domain.ViewList, f.session.Navigation.View)
	assert.Equal(t, 0, f.session.Cart.Count())

	n, err := f.repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAddToCart(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()

	res, err := f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID, ProductID: 2, Quantity: 2})
	require.NoError(t, err)
	assert.True(t, res.Added)
	assert.Equal(t, 2, res.Session.Cart.Count())
	assert.True(t, res.Session.Overlay.Visible)
	assert.Equal(t, 2, res.Session.Overlay.ProductID)
	assert.Equal(t, "Zen Table Lamp", res.Session.Overlay.Name)
	assert.True(t, f.tasks.Pending(OverlayTaskKey(f.session.ID)))

	res, err = f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID, ProductID: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Session.Cart.Count())
	require.Len(t, res.Session.Cart.Items, 1)
	assert.Equal(t, int64(3*89000), res.Session.Cart.Total())
}

func TestAddToCart_UsesSelectedProduct(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()

	_, err := f.navigate.Handle(ctx, NavigateCommand{SessionID: f.session.ID, Action: "select-product", ProductID: 5})
	require.NoError(t, err)

	res, err := f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID, Quantity: 1})
	require.NoError(t, err)
	assert.True(t, res.Added)
	_, ok := res.Session.Cart.Find(5)
	assert.True(t, ok)
}

func TestAddToCart_NothingToAdd(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()

	res, err := f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID})
	require.NoError(t, err)
	assert.False(t, res.Added)

	res, err = f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID, ProductID: 999, Quantity: 1})
	require.NoError(t, err)
	assert.False(t, res.Added)
	assert.Equal(t, 0, res.Session.Cart.Count())
	assert.False(t, res.Session.Overlay.Visible)
	assert.False(t, f.tasks.Pending(OverlayTaskKey(f.session.ID)))
}

func TestAddToCart_UnknownSession(t *testing.T) {
	f := setup(t, time.Hour)

	_, err := f.add.Handle(context.Background(), AddToCartCommand{SessionID: "missing", ProductID: 1})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestOverlayHidesAfterDuration(t *testing.T) {
	f := setup(t, 30*time.Millisecond)

	_, err := f.add.Handle(context.Background(), AddToCartCommand{SessionID: f.session.ID, ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	assert.True(t, f.get(t).Overlay.Visible)

	assert.Eventually(t, func() bool {
		return !f.get(t).Overlay.Visible
	}, time.Second, 5*time.Millisecond)
	assert.False(t, f.tasks.Pending(OverlayTaskKey(f.session.ID)))
}

func TestOverlayRestartsOnReAdd(t *testing.T) {
	f := setup(t, 150*time.Millisecond)
	ctx := context.Background()

	_, err := f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID, ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	res, err := f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID, ProductID: 3, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Session.Overlay.ProductID)

	// the first timer would have fired by now
	time.Sleep(80 * time.Millisecond)
	s := f.get(t)
	assert.True(t, s.Overlay.Visible)
	assert.Equal(t, 3, s.Overlay.ProductID)

	assert.Eventually(t, func() bool {
		return !f.get(t).Overlay.Visible
	}, time.Second, 5*time.Millisecond)
}

func TestUpdateQuantity(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()
	h := NewUpdateQuantityHandler(f.repo)

	_, err := f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID, ProductID: 4, Quantity: 1})
	require.NoError(t, err)

	s, err := h.Handle(ctx, UpdateQuantityCommand{SessionID: f.session.ID, ProductID: 4, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, s.Cart.Count())

	_, err = h.Handle(ctx, UpdateQuantityCommand{SessionID: f.session.ID, ProductID: 4, Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 5, f.get(t).Cart.Count())

	s, err = h.Handle(ctx, UpdateQuantityCommand{SessionID: f.session.ID, ProductID: 4, Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, s.Cart.Items)
}

func TestToggleFavorite(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()
	h := NewToggleFavoriteHandler(f.repo)

	fav, s, err := h.Handle(ctx, ToggleFavoriteCommand{SessionID: f.session.ID, ProductID: 7})
	require.NoError(t, err)
	assert.True(t, fav)
	assert.True(t, s.Favorites.Has(7))

	fav, s, err = h.Handle(ctx, ToggleFavoriteCommand{SessionID: f.session.ID, ProductID: 7})
	require.NoError(t, err)
	assert.False(t, fav)
	assert.False(t, s.Favorites.Has(7))
}

func TestUpdateBrowse(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()
	h := NewUpdateBrowseHandler(f.repo)

	s, err := h.Handle(ctx, UpdateBrowseCommand{
		SessionID: f.session.ID,
		Search:    " lamp",
		Sort:      "price",
	})
	require.NoError(t, err)
	assert.Equal(t, " lamp", s.Browse.Search)
	assert.Equal(t, "price", string(s.Browse.Sort))

	_, err = h.Handle(ctx, UpdateBrowseCommand{SessionID: f.session.ID, Sort: "rating"})
	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, " lamp", f.get(t).Browse.Search)
}

func TestToggleFilter(t *testing.T) {
	f := setup(t, time.Second)
	ctx := context.Background()
	h := NewToggleFilterHandler(f.repo)

	_, err := NewUpdateBrowseHandler(f.repo).Handle(ctx, UpdateBrowseCommand{SessionID: f.session.ID, Search: "lamp", Sort: "price"})
	require.NoError(t, err)

	s, err := h.Handle(ctx, ToggleFilterCommand{SessionID: f.session.ID, Dimension: catalog.DimensionRoom, Value: "Bedroom"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bedroom"}, s.Browse.Filters.Room)
	assert.Equal(t, "lamp", s.Browse.Search)
	assert.Equal(t, catalog.SortPrice, s.Browse.Sort)

	s, err = h.Handle(ctx, ToggleFilterCommand{SessionID: f.session.ID, Dimension: catalog.DimensionPrice, Value: "under-50k"})
	require.NoError(t, err)
	assert.Equal(t, catalog.PriceUnder50k, s.Browse.Filters.PriceRange)

	s, err = h.Handle(ctx, ToggleFilterCommand{SessionID: f.session.ID, Dimension: catalog.DimensionRoom, Value: "Bedroom"})
	require.NoError(t, err)
	assert.Empty(t, s.Browse.Filters.Room)

	_, err = h.Handle(ctx, ToggleFilterCommand{SessionID: f.session.ID, Dimension: "brand", Value: "Lumen"})
	assert.True(t, domain.IsValidation(err))

	_, err = h.Handle(ctx, ToggleFilterCommand{SessionID: "missing", Dimension: catalog.DimensionStyle, Value: "Modern"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestNavigate_CheckoutFlow(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()

	_, err := f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID, ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	_, err = f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID, ProductID: 8, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.ViewBasket, f.nav(t, "open-cart").Session.Navigation.View)
	assert.Equal(t, domain.ViewCheckout, f.nav(t, "checkout").Session.Navigation.View)

	res, err := f.navigate.Handle(ctx, NavigateCommand{
		SessionID: f.session.ID,
		Action:    "proceed-to-payment",
		Customer:  shipping,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewPayment, res.Session.Navigation.View)

	assert.Equal(t, domain.ViewConfirmation, f.nav(t, "proceed-to-confirmation").Session.Navigation.View)

	res = f.nav(t, "complete-purchase")
	require.NotNil(t, res.Order)
	assert.Equal(t, domain.ViewOrderConfirmation, res.Session.Navigation.View)
	assert.Empty(t, res.Session.Cart.Items)
	assert.Equal(t, int64(2*129000+45000), res.Order.Total)
	assert.Equal(t, 3, res.Order.ItemCount)

	events := f.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, f.session.ID, events[0].SessionID)
	assert.Equal(t, res.Order.Number, events[0].OrderNumber)
	assert.Equal(t, "Seoul", events[0].City)
	assert.Len(t, events[0].Lines, 2)

	res = f.nav(t, "continue-shopping")
	assert.Equal(t, domain.ViewList, res.Session.Navigation.View)
	assert.Nil(t, res.Session.LastOrder)
	assert.Equal(t, domain.CustomerInfo{}, res.Session.Customer)
}

func TestNavigate_PublishFailureKeepsOrder(t *testing.T) {
	f := setup(t, time.Hour)
	f.publisher.err = errors.New("broker down")

	_, err := f.add.Handle(context.Background(), AddToCartCommand{SessionID: f.session.ID, ProductID: 6, Quantity: 1})
	require.NoError(t, err)

	res := f.nav(t, "complete-purchase")
	require.NotNil(t, res.Order)
	assert.Empty(t, f.get(t).Cart.Items)
	assert.NotNil(t, f.get(t).LastOrder)
}

func TestNavigate_Errors(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()

	tests := []struct {
		name    string
		cmd     NavigateCommand
		wantErr error
	}{
		{"unknown action", NavigateCommand{Action: "teleport"}, domain.ErrUnknownAction},
		{"unknown product", NavigateCommand{Action: "select-product", ProductID: 42}, domain.ErrProductNotFound},
		{"non-menu screen", NavigateCommand{Action: "menu", Screen: "payment"}, domain.ErrUnknownView},
		{"incomplete shipping", NavigateCommand{Action: "proceed-to-payment", Customer: domain.CustomerInfo{FullName: "Kim"}}, domain.ErrInvalidCustomerInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cmd.SessionID = f.session.ID
			_, err := f.navigate.Handle(ctx, tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.ViewList, f.get(t).Navigation.View)
		})
	}
}

func TestNavigate_Menu(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()

	assert.True(t, f.nav(t, "open-menu").Session.Navigation.NavOpen)

	res, err := f.navigate.Handle(ctx, NavigateCommand{SessionID: f.session.ID, Action: "menu", Screen: "about"})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewAbout, res.Session.Navigation.View)
	assert.False(t, res.Session.Navigation.NavOpen)
}

func TestRoomAnalysis_Completes(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()
	upload := NewUploadRoomImageHandler(f.repo, f.tasks)
	start := NewStartAnalysisHandler(f.repo, analyzer.NewStubAnalyzer(20*time.Millisecond), f.tasks, f.metrics)

	f.nav(t, "room-analyzer")

	_, err := start.Handle(ctx, StartAnalysisCommand{SessionID: f.session.ID})
	assert.ErrorIs(t, err, domain.ErrNoRoomImage)

	ref, _, err := upload.Handle(ctx, UploadRoomImageCommand{
		SessionID:   f.session.ID,
		Filename:    "room.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ref.ID)

	s, err := start.Handle(ctx, StartAnalysisCommand{SessionID: f.session.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisAnalyzing, s.Analysis.Status)

	assert.Eventually(t, func() bool {
		return f.get(t).Analysis.Status == domain.AnalysisCompleted
	}, time.Second, 5*time.Millisecond)

	res := f.get(t).Analysis.Result
	require.NotNil(t, res)
	assert.Equal(t, "Living Room", res.RoomType)
	assert.Equal(t, []int{1, 3, 5}, res.Recommendations)
}

func TestRoomAnalysis_CancelledByNavigation(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()
	a := newBlockingAnalyzer()
	upload := NewUploadRoomImageHandler(f.repo, f.tasks)
	start := NewStartAnalysisHandler(f.repo, a, f.tasks, f.metrics)

	f.nav(t, "room-analyzer")
	_, _, err := upload.Handle(ctx, UploadRoomImageCommand{SessionID: f.session.ID, ContentType: "image/png", Size: 10})
	require.NoError(t, err)
	_, err = start.Handle(ctx, StartAnalysisCommand{SessionID: f.session.ID})
	require.NoError(t, err)
	<-a.started

	res := f.nav(t, "back-to-list")
	assert.Equal(t, domain.AnalysisIdle, res.Session.Analysis.Status)
	assert.NotNil(t, res.Session.Analysis.Image)

	assert.Eventually(t, func() bool {
		return !f.tasks.Pending(AnalysisTaskKey(f.session.ID))
	}, time.Second, 5*time.Millisecond)

	close(a.release)
	time.Sleep(20 * time.Millisecond)
	s := f.get(t)
	assert.Equal(t, domain.AnalysisIdle, s.Analysis.Status)
	assert.Nil(t, s.Analysis.Result)
}

func TestRoomAnalysis_NewUploadSupersedes(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()
	a := newBlockingAnalyzer()
	upload := NewUploadRoomImageHandler(f.repo, f.tasks)
	start := NewStartAnalysisHandler(f.repo, a, f.tasks, f.metrics)

	_, _, err := upload.Handle(ctx, UploadRoomImageCommand{SessionID: f.session.ID, ContentType: "image/png", Size: 10})
	require.NoError(t, err)
	_, err = start.Handle(ctx, StartAnalysisCommand{SessionID: f.session.ID})
	require.NoError(t, err)
	<-a.started

	_, s, err := upload.Handle(ctx, UploadRoomImageCommand{SessionID: f.session.ID, Filename: "second.png", ContentType: "image/png", Size: 20})
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisIdle, s.Analysis.Status)
	assert.Equal(t, "second.png", s.Analysis.Image.Filename)
	assert.False(t, f.tasks.Pending(AnalysisTaskKey(f.session.ID)))
}

func TestRoomAnalysis_Failure(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()
	upload := NewUploadRoomImageHandler(f.repo, f.tasks)
	start := NewStartAnalysisHandler(f.repo, failingAnalyzer{}, f.tasks, f.metrics)

	_, _, err := upload.Handle(ctx, UploadRoomImageCommand{SessionID: f.session.ID, ContentType: "image/webp", Size: 10})
	require.NoError(t, err)
	_, err = start.Handle(ctx, StartAnalysisCommand{SessionID: f.session.ID})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return f.get(t).Analysis.Status == domain.AnalysisIdle
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, f.get(t).Analysis.Result)
}

func TestUploadRoomImage_Validation(t *testing.T) {
	f := setup(t, time.Hour)
	upload := NewUploadRoomImageHandler(f.repo, f.tasks)

	tests := []struct {
		name string
		cmd  UploadRoomImageCommand
	}{
		{"not an image", UploadRoomImageCommand{ContentType: "application/pdf", Size: 10}},
		{"empty", UploadRoomImageCommand{ContentType: "image/png", Size: 0}},
		{"too large", UploadRoomImageCommand{ContentType: "image/png", Size: MaxImageSize + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cmd.SessionID = f.session.ID
			_, _, err := upload.Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, domain.ErrInvalidImage)
		})
	}
	assert.Nil(t, f.get(t).Analysis.Image)
}

func TestDeleteSession_CancelsTimers(t *testing.T) {
	f := setup(t, time.Hour)
	ctx := context.Background()

	_, err := f.add.Handle(ctx, AddToCartCommand{SessionID: f.session.ID, ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	require.True(t, f.tasks.Pending(OverlayTaskKey(f.session.ID)))

	err = NewDeleteSessionHandler(f.repo, f.tasks, f.metrics).Handle(ctx, DeleteSessionCommand{SessionID: f.session.ID})
	require.NoError(t, err)
	assert.False(t, f.tasks.Pending(OverlayTaskKey(f.session.ID)))

	_, err = f.repo.Get(ctx, f.session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
