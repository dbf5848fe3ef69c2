package models

import "errors"

// PaymentMethod est une énumération fermée : toute logique propre à un moyen
// de paiement (remboursement, capture) doit pouvoir être vérifiée de façon
// exhaustive.
type PaymentMethod string

const (
	PaymentCOD        PaymentMethod = "cod"
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetbanking PaymentMethod = "netbanking"
	PaymentWallet     PaymentMethod = "wallet"
)

var validPaymentMethods = map[PaymentMethod]struct{}{
	PaymentCOD:        {},
	PaymentCard:       {},
	PaymentUPI:        {},
	PaymentNetbanking: {},
	PaymentWallet:     {},
}

func ToPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if _, ok := validPaymentMethods[m]; ok {
		return m, nil
	}
	return "", errors.New("moyen de paiement invalide")
}
