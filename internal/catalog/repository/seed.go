package repository

import "github.com/tair/lightspace/internal/catalog/domain"

// SeedProducts is the built-in lighting catalog
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Nordic Pendant Light",
			Price:       "₩129,000",
			PriceValue:  129000,
			Brand:       "Lumière Studio",
			Images:      []string{"/images/products/nordic-pendant-1.jpg", "/images/products/nordic-pendant-2.jpg"},
			Description: "Soft linen shade on an oak canopy that spreads a warm, even glow over a sofa or dining table.",
			Location:    "Copenhagen",
			Features:    []string{"Dimmable", "Linen shade", "Adjustable cord"},
			Room:        "Living Room",
			Style:       "Scandinavian",
			Specs: domain.Specs{
				Power:              "12W",
				ColorTemperature:   "2700K",
				Lumens:             "1100lm",
				InstallationMethod: "Ceiling mount",
				Voltage:            "220V",
				EnergyRating:       "A+",
				Dimensions:         "Ø45 x H30 cm",
			},
		},
		{
			ID:          2,
			Name:        "Zen Table Lamp",
			Price:       "₩89,000",
			PriceValue:  89000,
			Brand:       "Kumo Lighting",
			Images:      []string{"/images/products/zen-table-1.jpg", "/images/products/zen-table-2.jpg"},
			Description: "Washi paper globe on a walnut base for calm bedside reading light.",
			Location:    "Kyoto",
			Features:    []string{"Touch dimmer", "Washi paper", "USB-C charging port"},
			Room:        "Bedroom",
			Style:       "Japandi",
			Specs: domain.Specs{
				Power:              "8W",
				ColorTemperature:   "2700K",
				Lumens:             "600lm",
				InstallationMethod: "Freestanding",
				Voltage:            "220V",
				EnergyRating:       "A",
				Dimensions:         "Ø25 x H38 cm",
			},
		},
		{
			ID:          3,
			Name:        "Industrial Floor Lamp",
			Price:       "₩159,000",
			PriceValue:  159000,
			Brand:       "Forge & Filament",
			Images:      []string{"/images/products/industrial-floor-1.jpg", "/images/products/industrial-floor-2.jpg"},
			Description: "Matte black steel tripod with an articulated head, built for reading corners.",
			Location:    "Seoul",
			Features:    []string{"Articulated head", "Foot switch", "Steel frame"},
			Room:        "Living Room",
			Style:       "Industrial",
			Specs: domain.Specs{
				Power:              "15W",
				ColorTemperature:   "3000K",
				Lumens:             "1400lm",
				InstallationMethod: "Freestanding",
				Voltage:            "220V",
				EnergyRating:       "A+",
				Dimensions:         "W50 x H165 cm",
			},
		},
		{
			ID:          4,
			Name:        "Modern Wall Sconce",
			Price:       "₩75,000",
			PriceValue:  75000,
			Brand:       "Linea",
			Images:      []string{"/images/products/modern-sconce-1.jpg"},
			Description: "Slim up-and-down wall washer in brushed brass for hallways and headboards.",
			Location:    "Milan",
			Features:    []string{"Up/down light", "Brushed brass", "Hardwired"},
			Room:        "Bedroom",
			Style:       "Modern",
			Specs: domain.Specs{
				Power:              "10W",
				ColorTemperature:   "3000K",
				Lumens:             "800lm",
				InstallationMethod: "Wall mount",
				Voltage:            "220V",
				EnergyRating:       "A+",
				Dimensions:         "W8 x H28 cm",
			},
		},
		{
			ID:          5,
			Name:        "Crystal Chandelier",
			Price:       "₩450,000",
			PriceValue:  450000,
			Brand:       "Maison Éclat",
			Images:      []string{"/images/products/crystal-chandelier-1.jpg", "/images/products/crystal-chandelier-2.jpg"},
			Description: "Twelve-arm chandelier with hand-cut crystal drops for high ceilings.",
			Location:    "Paris",
			Features:    []string{"Hand-cut crystal", "12 lights", "Height adjustable"},
			Room:        "Living Room",
			Style:       "Classic",
			Specs: domain.Specs{
				Power:              "60W",
				ColorTemperature:   "2700K",
				Lumens:             "4800lm",
				InstallationMethod: "Ceiling mount",
				Voltage:            "220V",
				EnergyRating:       "A",
				Dimensions:         "Ø80 x H70 cm",
			},
		},
		{
			ID:          6,
			Name:        "Smart LED Bulb Set",
			Price:       "₩50,000",
			PriceValue:  50000,
			Brand:       "Brightwave",
			Images:      []string{"/images/products/smart-bulb-1.jpg"},
			Description: "Four app-controlled E26 bulbs with tunable white and 16 million colours.",
			Location:    "Seoul",
			Features:    []string{"App control", "Voice assistant", "Tunable white"},
			Room:        "Kitchen",
			Style:       "Modern",
			Specs: domain.Specs{
				Power:              "9W x 4",
				ColorTemperature:   "2200K-6500K",
				Lumens:             "806lm",
				InstallationMethod: "E26 socket",
				Voltage:            "220V",
				EnergyRating:       "A++",
				Dimensions:         "Ø6 x H11 cm",
			},
		},
		{
			ID:          7,
			Name:        "Ambient String Lights",
			Price:       "₩35,000",
			PriceValue:  35000,
			Brand:       "Glowfield",
			Images:      []string{"/images/products/string-lights-1.jpg", "/images/products/string-lights-2.jpg"},
			Description: "Ten metres of weatherproof warm-white micro bulbs for balconies and terraces.",
			Location:    "Busan",
			Features:    []string{"IP65", "Timer", "8 modes"},
			Room:        "Outdoor",
			Style:       "Bohemian",
			Specs: domain.Specs{
				Power:              "5W",
				ColorTemperature:   "2400K",
				Lumens:             "300lm",
				InstallationMethod: "Hanging",
				Voltage:            "5V USB",
				EnergyRating:       "A++",
				Dimensions:         "L10 m",
			},
		},
		{
			ID:          8,
			Name:        "Minimalist Desk Lamp",
			Price:       "₩45,000",
			PriceValue:  45000,
			Brand:       "Linea",
			Images:      []string{"/images/products/desk-lamp-1.jpg"},
			Description: "Flicker-free aluminium task lamp with a fold-flat arm.",
			Location:    "Milan",
			Features:    []string{"Flicker-free", "Foldable", "Memory brightness"},
			Room:        "Office",
			Style:       "Minimalist",
			Specs: domain.Specs{
				Power:              "7W",
				ColorTemperature:   "4000K",
				Lumens:             "500lm",
				InstallationMethod: "Freestanding",
				Voltage:            "220V",
				EnergyRating:       "A+",
				Dimensions:         "W15 x H42 cm",
			},
		},
		{
			ID:          9,
			Name:        "Rattan Ceiling Light",
			Price:       "₩210,000",
			PriceValue:  210000,
			Brand:       "Terra Home",
			Images:      []string{"/images/products/rattan-ceiling-1.jpg", "/images/products/rattan-ceiling-2.jpg"},
			Description: "Hand-woven rattan dome that casts patterned light over the dining table.",
			Location:    "Bali",
			Features:    []string{"Hand-woven", "Natural rattan", "Dimmable"},
			Room:        "Dining Room",
			Style:       "Natural",
			Specs: domain.Specs{
				Power:              "18W",
				ColorTemperature:   "2700K",
				Lumens:             "1600lm",
				InstallationMethod: "Ceiling mount",
				Voltage:            "220V",
				EnergyRating:       "A",
				Dimensions:         "Ø60 x H35 cm",
			},
		},
	}
}
