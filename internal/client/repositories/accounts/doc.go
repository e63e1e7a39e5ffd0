// Package accounts implements the account store: the single owner of the
// "accounts" collection in durable storage.
//
// The collection is one JSON array written as a unit. Every mutation loads
// the whole array, changes one record in memory and writes the whole array
// back. Inside a process a mutex serializes mutations; when the storage
// backend implements storage.Updater the load and the write also run as one
// backend transaction, which covers other processes sharing the same data
// directory.
//
// Two consistency modes exist. ModeLastWriteWins keeps the plain
// whole-collection overwrite. ModeCompareAndSwap additionally keeps a
// revision per record and rejects profile updates made against a stale
// revision with common.ErrVersionConflict.
//
// Malformed storage content never reaches callers: it is logged and read as
// an empty collection.
package accounts
