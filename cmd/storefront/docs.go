package main

// @title Lightspace Storefront API
// @version 1.0
// @description Lighting storefront service: catalog search and filters, favorites, cart with added-to-cart overlay, checkout flow and room analyzer. Observability via Prometheus, Jaeger and structured logs.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @tag.name Catalog
// @tag.description Stateless product search, filters and detail

// @tag.name Sessions
// @tag.description Shopping session lifecycle

// @tag.name Browse
// @tag.description Per-session search, filters, sort and favorites

// @tag.name Cart
// @tag.description Cart lines and quantities

// @tag.name Navigation
// @tag.description Screen transitions and checkout

// @tag.name Room Analyzer
// @tag.description Room photo upload and lighting recommendations

// @tag.name Health
// @tag.description Health check endpoints
