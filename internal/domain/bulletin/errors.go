package bulletin

import "errors"

var (
	ErrBulletinNotFound = errors.New("bulletin not found")
	// ErrBulletinExists signals a violation of the (cycle_id, employe_id)
	// uniqueness constraint. Generation treats it as "already covered".
	ErrBulletinExists = errors.New("bulletin already exists for this employee and cycle")
	// ErrBulletinNotEditable guards amount corrections and deletion: once a
	// payment has been recorded against a bulletin, its amounts are frozen.
	ErrBulletinNotEditable = errors.New("bulletin has payments recorded and cannot be modified")
)
