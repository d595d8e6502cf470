package model

type Category struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TranslationKey string `json:"translationKey,omitempty"`
	ArticleCount   *int   `json:"articleCount,omitempty"`
}

type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	AccountID string `json:"accountId,omitempty"`
}

type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Domain   string `json:"domain,omitempty"`
	IsActive bool   `json:"isActive"`
}
