/*
Package escrow implements multisignature transfers.

An initiation debits the sender immediately and holds the amount in
escrow under the hash of the initiating operation. Every approver
named at initiation must approve before the recipient is credited and
the transfer resolves to DONE. Any single approver may reject instead,
refunding the sender and resolving the transfer to REJECTED. DONE and
REJECTED are terminal, the record is kept forever as an audit trail.
*/
package escrow
