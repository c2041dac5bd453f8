package properties

import "rental_site/internal/domain"

// Legacy is the built-in data set used when property files cannot be read.
func Legacy() []domain.Property {
	ps := []domain.Property{
		{
			ID:       "property-1",
			Slug:     "property-1",
			Name:     "One Bedroom Apartment",
			Subtitle: "Cozy apartment with private balcony",
			Description: "A charming one-bedroom apartment perfect for couples or solo travelers. " +
				"Features a comfortable bedroom, modern bathroom with shower, and a bright living room " +
				"with fully equipped kitchen. The private balcony offers a peaceful retreat with scenic views.",
			Capacity: domain.Capacity{Guests: 2, Bedrooms: "1 double bedroom", Bathrooms: "1 bathroom with shower"},
			Size:     domain.Size{Value: 70, Unit: "sqm"},
			Images:   domain.ImageSet{Hero: "hero.webp", Thumbnail: "thumbnail.svg"},
			Rooms: []domain.Room{
				{
					Name:        "Bedroom",
					Description: "Spacious double bedroom with large wardrobes, floor heating and cooling, and direct access to the private balcony.",
					Image:       "bedroom.svg",
					Amenities:   []string{"Double bed", "Spacious wardrobe", "Balcony access", "Floor climate control"},
				},
				{
					Name:        "Living Room",
					Description: "Bright living room with a comfortable sofa, flat-screen TV and an elegant dining area.",
					Image:       "living-room.svg",
					Amenities:   []string{"Sofa", "Flat-screen TV", "Dining table", "Large windows"},
				},
				{
					Name:        "Kitchen",
					Description: "Modern, fully equipped kitchen with induction cooktop, oven, microwave and complete utensils.",
					Image:       "kitchen.svg",
					Amenities:   []string{"Refrigerator", "Induction cooktop", "Microwave", "Dishwasher", "Coffee maker"},
				},
				{
					Name:        "Bathroom",
					Description: "Modern bathroom with spacious shower, hairdryer and courtesy set.",
					Image:       "bathroom.svg",
					Amenities:   []string{"Spacious shower", "Hairdryer", "Courtesy set", "Towels provided"},
				},
				{
					Name:        "Balcony",
					Description: "Private balcony with table and chairs and panoramic views.",
					Image:       "balcony.svg",
					Amenities:   []string{"Table", "Chairs", "Panoramic view"},
				},
			},
			Features: []string{
				"High-speed WiFi", "Parking included", "Private balcony", "Fully equipped kitchen",
				"Floor heating and cooling", "Flat-screen TV", "Linens and towels included",
				"Elevator", "Safe", "Cots and cribs available",
			},
			IdealFor: []string{"Couples", "Solo travelers", "Business trips", "Romantic weekends"},
		},
	}
	for i := range ps {
		_ = Validate(&ps[i]) // complete records; only fills defaults
	}
	return ps
}
