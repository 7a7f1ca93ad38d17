package repository

import "errors"

// ErrNotFound is returned by any repository when the requested record does
// not exist, or when a conditional update matched nothing. Store backends
// translate their own sentinel (e.g. mongo.ErrNoDocuments) into this one so
// services never depend on driver errors.
var ErrNotFound = errors.New("record not found")
