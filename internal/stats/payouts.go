package stats

import "organizer-portal/internal/models"

type Balance struct {
	AvailableCents int64
	PendingCents   int64
	PaidOutCents   int64
	InFlightCents  int64
}

// ComputeBalance derives the payout balance from the transaction ledger.
// Pending payouts are reserved so the same money cannot be requested twice.
func ComputeBalance(transactions []models.Transaction) Balance {
	var b Balance
	for _, t := range transactions {
		switch t.Kind {
		case models.TransactionSale:
			switch t.Status {
			case models.TransactionCompleted:
				b.AvailableCents += t.AmountCents
			case models.TransactionPending:
				b.PendingCents += t.AmountCents
			}
		case models.TransactionFee, models.TransactionRefund:
			if t.Status == models.TransactionCompleted {
				b.AvailableCents -= t.AmountCents
			}
		case models.TransactionPayout:
			switch t.Status {
			case models.TransactionCompleted:
				b.AvailableCents -= t.AmountCents
				b.PaidOutCents += t.AmountCents
			case models.TransactionPending:
				b.AvailableCents -= t.AmountCents
				b.InFlightCents += t.AmountCents
			}
		}
	}
	return b
}

// StatusCounts counts records per status label.
func StatusCounts[T any](items []T, status func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[status(item)]++
	}
	return counts
}
