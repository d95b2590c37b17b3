package repositories

import "errors"

// ErrDuplicateKey é retornado pelas implementações quando um índice único é violado
var ErrDuplicateKey = errors.New("duplicate key")
