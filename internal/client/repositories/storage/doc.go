// Package storage provides the key/value facilities the account store and
// the session marker are built on.
//
// Two roles exist. Durable storage survives restarts and holds the account
// collection and the remember-me token; it is backed by SQLite
// (SQLiteRepository) or by a directory of files (FileRepository). Session
// storage lives only as long as the process and is a MemoryRepository.
//
// Every backend also implements Updater, an atomic read-modify-write of a
// single key. Callers that need the whole-collection transaction use it
// instead of a Get followed by a Set.
package storage
