package handlers

import (
	"net/http"

	"organizer-portal/internal/format"
	"organizer-portal/internal/models"
	"organizer-portal/internal/stats"
	"organizer-portal/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type payoutsView struct {
	Balance      stats.Balance
	Account      models.PayoutAccount
	Transactions []models.Transaction
	MinimumCents int64
	Form         models.PayoutRequest
	Errors       map[string]string
}

func (h *Handler) loadPayouts(c *gin.Context) (payoutsView, error) {
	ctx := c.Request.Context()
	txs, err := h.store.ListTransactions(ctx)
	if err != nil {
		return payoutsView{}, err
	}
	account, err := h.store.GetPayoutAccount(ctx)
	if err != nil {
		return payoutsView{}, err
	}
	return payoutsView{
		Balance:      stats.ComputeBalance(txs),
		Account:      account,
		Transactions: txs,
		MinimumCents: h.minPayout,
	}, nil
}

func (h *Handler) Payouts(c *gin.Context) {
	view, err := h.loadPayouts(c)
	if err != nil {
		h.fail(c, "load payouts", err)
		return
	}
	h.render(c, http.StatusOK, "payouts.html", h.page(c, "payouts", "Payouts", view))
}

// RequestPayout records a pending payout transaction. The amount must be at
// least the configured minimum and at most the available balance.
func (h *Handler) RequestPayout(c *gin.Context) {
	ctx := c.Request.Context()

	// balance check and insert must not interleave
	h.payoutMu.Lock()
	defer h.payoutMu.Unlock()

	view, err := h.loadPayouts(c)
	if err != nil {
		h.fail(c, "load payouts", err)
		return
	}

	var req models.PayoutRequest
	if err := c.ShouldBind(&req); err != nil {
		view.Form, view.Errors = req, formErrors(err)
		h.render(c, http.StatusUnprocessableEntity, "payouts.html", h.page(c, "payouts", "Payouts", view))
		return
	}
	view.Form = req

	org, err := h.store.GetOrganizer(ctx)
	if err != nil {
		h.fail(c, "load organizer", err)
		return
	}

	amount, err := format.ParseMoney(req.Amount)
	switch {
	case err != nil:
		view.Errors = map[string]string{"amount": "Enter an amount like 250.00."}
	case amount < h.minPayout:
		view.Errors = map[string]string{"amount": "The minimum payout is " + format.Money(h.minPayout, org.Currency) + "."}
	case amount > view.Balance.AvailableCents:
		view.Errors = map[string]string{"amount": "You can request at most " + format.Money(view.Balance.AvailableCents, org.Currency) + "."}
	}
	if view.Errors != nil {
		h.render(c, http.StatusUnprocessableEntity, "payouts.html", h.page(c, "payouts", "Payouts", view))
		return
	}

	now := h.clock.Now()
	tx := models.Transaction{
		ID:          utils.GenerateID("txn"),
		Kind:        models.TransactionPayout,
		Description: "Payout to " + format.MaskIBAN(view.Account.IBAN),
		AmountCents: amount,
		Status:      models.TransactionPending,
		CreatedAt:   now,
	}
	if err := h.store.CreateTransaction(ctx, tx); err != nil {
		h.fail(c, "create payout", err)
		return
	}
	n := models.Notification{
		ID:        utils.GenerateID("ntf"),
		Kind:      models.NotificationPayout,
		Title:     "Payout of " + format.Money(amount, org.Currency) + " requested",
		Body:      "It will be sent with the next scheduled payout run.",
		CreatedAt: now,
	}
	if err := h.store.CreateNotification(ctx, n); err != nil {
		h.logger.Warn("create notification", zap.Error(err))
	}

	h.logger.Info("payout requested", zap.String("id", tx.ID), zap.Int64("amount_cents", amount))
	redirect(c, "/payouts", "payout_requested")
}
