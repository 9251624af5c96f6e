/*
Package ledger implements double-entry money movement between wallets.

Every operation creates a PENDING transaction, updates one or two balances,
writes a matched CREDIT/DEBIT entry pair and finalizes the status inside a
single database transaction. Debits never check balances in Go: the decrement
is conditional in SQL ("balance >= amount"), so concurrent debits against an
insufficient balance each fail cleanly with zero rows affected.

The clearing wallet is the system-owned counterparty for deposits and
withdrawals. It represents the external funding boundary and is exempt from
the non-negative invariant that applies to every user wallet.
*/
package ledger
