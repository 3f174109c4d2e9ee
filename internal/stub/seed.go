package stub

import (
	"github.com/shopspring/decimal"

	"github.com/example/lesson-shop/internal/catalog"
)

// SeedLessons returns the initial catalog the stub serves.
func SeedLessons() []catalog.Lesson {
	mk := func(id, subject, location string, price int64, spaces int) catalog.Lesson {
		return catalog.Lesson{
			ID:       id,
			Subject:  subject,
			Location: location,
			Price:    decimal.NewFromInt(price),
			Spaces:   spaces,
		}
	}
	return []catalog.Lesson{
		mk("1", "Mathematics", "Port Louis", 1000, 5),
		mk("2", "English Skills", "Rose-Hill", 900, 5),
		mk("3", "Science Lab", "Curepipe", 950, 5),
		mk("4", "History of Mauritius", "Moka", 800, 4),
		mk("5", "Coding (Beginner)", "Ebène (Online)", 1200, 6),
		mk("6", "Art & Craft", "Quatre Bornes", 700, 5),
		mk("7", "Music – Ravanne", "Vacoas", 850, 3),
		mk("8", "Sega Dance Basics", "Flic-en-Flac", 900, 5),
		mk("9", "Robotics Club", "Grand Baie", 1500, 5),
		mk("10", "PE & Fitness", "Beau-Bassin", 600, 5),
	}
}
