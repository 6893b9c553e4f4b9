package model

// SymbolEntry is a search result. Symbol is the uniqueness key.
type SymbolEntry struct {
	Symbol      string `json:"symbol"`
	DisplayName string `json:"display_name"`
}
