package transform

import (
	"strings"

	"github.com/godilite/helpdesk-portal/internal/model"
)

// Category requires both an id and a display name.
func Category(raw Record) (model.Category, bool) {
	c := model.Category{
		ID:             String(raw, "id"),
		Name:           String(raw, "displayName", "name"),
		TranslationKey: String(raw, "translationKey", "translatedName"),
	}
	if c.ID == "" || c.Name == "" {
		return model.Category{}, false
	}
	if n, ok := Int(raw, "articleCount", "articlesCount"); ok {
		count := int(n)
		c.ArticleCount = &count
	}
	return c, true
}

func Categories(raw []Record) []model.Category {
	out := make([]model.Category, 0, len(raw))
	for _, r := range raw {
		if c, ok := Category(r); ok {
			out = append(out, c)
		}
	}
	return out
}

func Contact(raw Record) (model.Contact, bool) {
	id := String(raw, "id")
	if id == "" {
		return model.Contact{}, false
	}

	name := String(raw, "name", "fullName")
	if name == "" {
		name = strings.TrimSpace(String(raw, "firstName") + " " + String(raw, "lastName"))
	}

	return model.Contact{
		ID:        id,
		Name:      name,
		Email:     String(raw, "email"),
		Phone:     String(raw, "phone", "mobile"),
		AccountID: String(raw, "accountId"),
	}, true
}

func Contacts(raw []Record) []model.Contact {
	out := make([]model.Contact, 0, len(raw))
	for _, r := range raw {
		if c, ok := Contact(r); ok {
			out = append(out, c)
		}
	}
	return out
}

// Account treats a missing isActive flag as active.
func Account(raw Record) (model.Account, bool) {
	id := String(raw, "id")
	if id == "" {
		return model.Account{}, false
	}
	return model.Account{
		ID:       id,
		Name:     String(raw, "accountName", "name"),
		Domain:   String(raw, "domain", "website"),
		IsActive: Bool(raw, true, "isActive"),
	}, true
}

func Accounts(raw []Record) []model.Account {
	out := make([]model.Account, 0, len(raw))
	for _, r := range raw {
		if a, ok := Account(r); ok {
			out = append(out, a)
		}
	}
	return out
}
