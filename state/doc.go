// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package state holds the bot's shared mutable state and its persistence
contract.

One Store instance is built per process. It owns four collections:

  - the subscriber set (canonical numbers opted in to broadcasts)
  - the number<->name directory, with auto-generated names on first contact
  - the append-only update log
  - the poll history, where only the most recent poll accepts votes

Every operation locks the store for the duration of the in-memory
mutation only; broadcast fan-out happens on copies. Mutations set a dirty
flag that FlushSnapshot clears atomically with taking the snapshot, which
is what makes write-if-dirty persistence safe under concurrent webhook
deliveries.
*/
package state
