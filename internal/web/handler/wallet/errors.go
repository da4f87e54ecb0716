package wallet

import "github.com/dreamboard/dreamboard/internal/apperr"

var errUnauthorized = apperr.New(apperr.ErrUnauthorized, "Wallet not connected")
