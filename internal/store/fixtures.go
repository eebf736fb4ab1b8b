package store

import "diamondadmin/internal/models"

// ProductFixtures returns the mock inventory the memory store is seeded
// with on construction. Order matters: the list screen shows it as-is
// under the default date sort.
func ProductFixtures() []models.Product {
	return []models.Product{
		{
			ID: "1", Shape: "Round Brilliant", CaratWeight: 2.5, Color: "D", Clarity: "VVS1",
			Cut: "Excellent", Certification: "GIA", PricePerCarat: 8500, TotalPrice: 21250,
			StockStatus: models.StockAvailable,
			Image:       "https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=150&h=150&fit=crop&crop=center",
			DateAdded:   "2024-01-15",
		},
		{
			ID: "2", Shape: "Princess", CaratWeight: 1.8, Color: "F", Clarity: "VS1",
			Cut: "Very Good", Certification: "AGS", PricePerCarat: 6200, TotalPrice: 11160,
			StockStatus: models.StockAvailable,
			Image:       "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=150&h=150&fit=crop&crop=center",
			DateAdded:   "2024-01-14",
		},
		{
			ID: "3", Shape: "Emerald", CaratWeight: 3.2, Color: "E", Clarity: "VVS2",
			Cut: "Excellent", Certification: "GIA", PricePerCarat: 9800, TotalPrice: 31360,
			StockStatus: models.StockSoldOut,
			Image:       "https://images.unsplash.com/photo-1544266503-7ad532882d90?w=150&h=150&fit=crop&crop=center",
			DateAdded:   "2024-01-13",
		},
		{
			ID: "4", Shape: "Oval", CaratWeight: 1.5, Color: "G", Clarity: "VS2",
			Cut: "Very Good", Certification: "GIA", PricePerCarat: 5800, TotalPrice: 8700,
			StockStatus: models.StockAvailable,
			Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=150&h=150&fit=crop&crop=center",
			DateAdded:   "2024-01-12",
		},
		{
			ID: "5", Shape: "Cushion", CaratWeight: 2.1, Color: "H", Clarity: "SI1",
			Cut: "Good", Certification: "EGL", PricePerCarat: 4200, TotalPrice: 8820,
			StockStatus: models.StockAvailable,
			Image:       "https://images.unsplash.com/photo-1602173574767-37ac01994b2a?w=150&h=150&fit=crop&crop=center",
			DateAdded:   "2024-01-11",
		},
		{
			ID: "6", Shape: "Marquise", CaratWeight: 1.2, Color: "I", Clarity: "VS1",
			Cut: "Very Good", Certification: "GIA", PricePerCarat: 4800, TotalPrice: 5760,
			StockStatus: models.StockAvailable,
			Image:       "https://images.unsplash.com/photo-1573408301185-9146fe634ad0?w=150&h=150&fit=crop&crop=center",
			DateAdded:   "2024-01-10",
		},
		{
			ID: "7", Shape: "Pear", CaratWeight: 1.9, Color: "J", Clarity: "SI2",
			Cut: "Good", Certification: "AGS", PricePerCarat: 3200, TotalPrice: 6080,
			StockStatus: models.StockSoldOut,
			Image:       "https://images.unsplash.com/photo-1596944924591-e7bc8d34bff8?w=150&h=150&fit=crop&crop=center",
			DateAdded:   "2024-01-09",
		},
	}
}

// CustomerFixtures returns the mock account list.
func CustomerFixtures() []models.Customer {
	return []models.Customer{
		{ID: "1", Name: "John Smith", Email: "john.smith@email.com", Username: "johnsmith",
			Status: models.CustomerActive, DateJoined: "2024-01-15", LastLogin: strptr("2024-03-20")},
		{ID: "2", Name: "Sarah Johnson", Email: "sarah.j@email.com", Username: "sarahj",
			Status: models.CustomerActive, DateJoined: "2024-02-10", LastLogin: strptr("2024-03-19")},
		{ID: "3", Name: "Michael Brown", Email: "michael.brown@email.com", Username: "michaelb",
			Status: models.CustomerInactive, DateJoined: "2024-01-25", LastLogin: strptr("2024-02-15")},
		{ID: "4", Name: "Emily Davis", Email: "emily.davis@email.com", Username: "emilyd",
			Status: models.CustomerActive, DateJoined: "2024-03-01", LastLogin: strptr("2024-03-21")},
		{ID: "5", Name: "David Wilson", Email: "david.wilson@email.com", Username: "davidw",
			Status: models.CustomerActive, DateJoined: "2024-02-20", LastLogin: strptr("2024-03-18")},
	}
}

func strptr(s string) *string { return &s }
