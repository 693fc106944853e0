package main

import (
	"github.com/shopspring/decimal"

	"github.com/michaelgivor/stackshop-app/internal/products"
)

type ratingSeed struct {
	rating  string
	reviews int
}

var sampleProducts = []products.NewProduct{
	{
		Name:        "TanStack Router Pro",
		Description: "The most powerful routing solution for React. Built with TypeScript, featuring type-safe routes, code splitting, and server-side rendering.",
		Price:       decimal.RequireFromString("99.99"),
		Badge:       products.BadgeNew,
		Image:       "/tanstack-circle-logo.png",
		Inventory:   products.InventoryInStock,
	},
	{
		Name:        "TanStack Query Enterprise",
		Description: "Powerful data synchronization for React. Fetch, cache, and update server state with zero configuration.",
		Price:       decimal.RequireFromString("149.99"),
		Badge:       products.BadgeNew,
		Image:       "/tanstack-circle-logo.png",
		Inventory:   products.InventoryInStock,
	},
	{
		Name:        "TanStack Table Premium",
		Description: "Headless UI for building powerful tables and datagrids. Fully customizable and framework agnostic.",
		Price:       decimal.RequireFromString("79.99"),
		Badge:       products.BadgeNew,
		Image:       "/tanstack-circle-logo.png",
		Inventory:   products.InventoryInStock,
	},
	{
		Name:        "TanStack Start Framework",
		Description: "Full-stack React framework with file-based routing, server-side rendering, and built-in optimizations.",
		Price:       decimal.RequireFromString("199.99"),
		Badge:       products.BadgeFeatured,
		Image:       "/tanstack-circle-logo.png",
		Inventory:   products.InventoryInStock,
	},
	{
		Name:        "TanStack Form Builder",
		Description: "Headless form library with validation, async submission, and field-level control. Perfect for complex forms.",
		Price:       decimal.RequireFromString("59.99"),
		Badge:       products.BadgeSale,
		Image:       "/tanstack-circle-logo.png",
		Inventory:   products.InventoryBackorder,
	},
	{
		Name:        "TanStack Virtual Scroller",
		Description: "High-performance virtual scrolling for large lists. Smooth scrolling with minimal memory footprint.",
		Price:       decimal.RequireFromString("49.99"),
		Badge:       products.BadgeLimited,
		Image:       "/tanstack-circle-logo.png",
		Inventory:   products.InventoryInStock,
	},
	{
		Name:        "TanStack DevTools Suite",
		Description: "Complete developer tools for debugging TanStack applications. Time-travel debugging and performance profiling.",
		Price:       decimal.RequireFromString("129.99"),
		Badge:       products.BadgeFeatured,
		Image:       "/tanstack-circle-logo.png",
		Inventory:   products.InventoryInStock,
	},
	{
		Name:        "TanStack Store Manager",
		Description: "Lightweight state management with derived state, subscriptions, and persistence. Perfect for React apps.",
		Price:       decimal.RequireFromString("39.99"),
		Badge:       products.BadgeSale,
		Image:       "/tanstack-circle-logo.png",
		Inventory:   products.InventoryPreorder,
	},
}

var sampleRatings = map[string]ratingSeed{
	"TanStack Router Pro":       {rating: "4.8", reviews: 127},
	"TanStack Query Enterprise": {rating: "4.9", reviews: 234},
	"TanStack Table Premium":    {rating: "4.7", reviews: 89},
	"TanStack Start Framework":  {rating: "4.6", reviews: 156},
	"TanStack Form Builder":     {rating: "4.5", reviews: 78},
	"TanStack Virtual Scroller": {rating: "4.4", reviews: 92},
	"TanStack DevTools Suite":   {rating: "4.7", reviews: 145},
	"TanStack Store Manager":    {rating: "4.3", reviews: 67},
}
