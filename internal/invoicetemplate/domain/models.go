// Package domain contains saved invoice presets: sender, recipient and bank
// details that prefill the form for repeat billing.
package domain

import (
	"context"
	"errors"
	"time"
)

type Template struct {
	ID               string    `json:"id"`
	Name             string    `json:"name" validate:"required"`
	SenderCompany    string    `json:"senderCompany"`
	SenderAddress    string    `json:"senderAddress"`
	RecipientCompany string    `json:"recipientCompany"`
	RecipientAddress string    `json:"recipientAddress"`
	AccountName      string    `json:"accountName"`
	AccountNumber    string    `json:"accountNumber"`
	BankName         string    `json:"bankName"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Service interface {
	Save(ctx context.Context, tpl Template) (string, error)
	List(ctx context.Context) ([]Template, error)
	GetByID(ctx context.Context, id string) (*Template, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrTemplateNotFound = errors.New("template_not_found")
	ErrNameRequired     = errors.New("invalid_template_name")
)
