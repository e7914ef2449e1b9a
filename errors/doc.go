/*
Package errors implements custom error interfaces for the ledger.

Error declarations should be generic and cover broad range of cases.
Each returned error instance can wrap a generic error declaration to
provide more details.

Extension packages register their own root errors with stable numeric
codes. Those codes are part of the external interface of the
application: a client observing a failed operation sees the code of the
root error that caused the failure. Framework level errors use codes
from 1000 upwards so that extension packages are free to claim the low,
documented code space.
*/
package errors
