package domain

// Overlay is the transient "added to cart" notification.
// Seq increases on every Show so a stale hide can be detected.
type Overlay struct {
	ProductID int    `json:"product_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	Visible   bool   `json:"visible"`
	Seq       uint64 `json:"seq"`
}

// Show replaces the snapshot, makes the overlay visible and returns the new Seq
func (o *Overlay) Show(item CartItem, added int) uint64 {
	o.Seq++
	o.ProductID = item.ProductID
	o.Name = item.Name
	o.Image = item.Image
	o.Quantity = added
	o.Visible = true
	return o.Seq
}

// Hide hides the overlay if seq is still the latest Show
func (o *Overlay) Hide(seq uint64) bool {
	if !o.Visible || o.Seq != seq {
		return false
	}
	o.Visible = false
	return true
}
