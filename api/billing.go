package api

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Subscription is the account's current plan.
type Subscription struct {
	Plan              string    `json:"plan"` // free | pro | team
	Status            string    `json:"status"`
	RenewsAt          time.Time `json:"renewsAt,omitempty"`
	MonthlyCredits    int       `json:"monthlyCredits"`
	SeatCount         int       `json:"seatCount"`
	CancelAtPeriodEnd bool      `json:"cancelAtPeriodEnd"`
}

// CreditBalance is the remaining review credits for the current period.
type CreditBalance struct {
	Remaining int       `json:"remaining"`
	Used      int       `json:"used"`
	ResetsAt  time.Time `json:"resetsAt"`
}

// Invoice is one billing statement.
type Invoice struct {
	ID        string    `json:"id"`
	AmountDue int       `json:"amountDue"` // cents
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	IssuedAt  time.Time `json:"issuedAt"`
	PDFURL    string    `json:"pdfUrl,omitempty"`
}

// GetSubscription returns the account's current subscription.
func (c *Client) GetSubscription(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := c.get(ctx, "/billing/subscription", &sub); err != nil {
		return nil, errors.Wrap(err, "[GetSubscription]")
	}
	return &sub, nil
}

// GetCreditBalance returns the remaining review credits.
func (c *Client) GetCreditBalance(ctx context.Context) (*CreditBalance, error) {
	var balance CreditBalance
	if err := c.get(ctx, "/billing/credits", &balance); err != nil {
		return nil, errors.Wrap(err, "[GetCreditBalance]")
	}
	return &balance, nil
}

// ListInvoices returns past invoices, newest first.
func (c *Client) ListInvoices(ctx context.Context) ([]Invoice, error) {
	var invoices []Invoice
	if err := c.get(ctx, "/billing/invoices", &invoices); err != nil {
		return nil, errors.Wrap(err, "[ListInvoices]")
	}
	return invoices, nil
}
