package models

type BankDirectoryEntry struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type AccountResolution struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}
