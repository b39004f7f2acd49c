package core

// Seed data for a first run. The seed categories keep stable literal IDs so
// existing documents written by earlier versions keep resolving; expense and
// income seeds use disjoint ranges.

func DefaultCurrencies() []Currency {
	return []Currency{
		{Code: "USD", Symbol: "$", Name: "US Dollar"},
		{Code: "EUR", Symbol: "€", Name: "Euro"},
		{Code: "GBP", Symbol: "£", Name: "British Pound"},
		{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
		{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
		{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	}
}

func DefaultLanguages() []Language {
	return []Language{
		{Code: "en", Name: "English"},
		{Code: "es", Name: "Español"},
		{Code: "fr", Name: "Français"},
		{Code: "de", Name: "Deutsch"},
		{Code: "zh", Name: "Chinese"},
		{Code: "ja", Name: "Japanese"},
	}
}

func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Food & Dining", Kind: Expense},
		{ID: "2", Name: "Transportation", Kind: Expense},
		{ID: "3", Name: "Shopping", Kind: Expense},
		{ID: "4", Name: "Entertainment", Kind: Expense},
		{ID: "5", Name: "Bills & Utilities", Kind: Expense},
		{ID: "6", Name: "Others", Kind: Expense},
		{ID: "7", Name: "Salary", Kind: Income},
		{ID: "8", Name: "Freelance", Kind: Income},
		{ID: "9", Name: "Investments", Kind: Income},
		{ID: "10", Name: "Others", Kind: Income},
	}
}
