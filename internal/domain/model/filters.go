//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// ShoutoutFilter narrows a shoutout listing. Zero values are ignored.
type ShoutoutFilter struct {
	ToUserID   string
	FromUserID string
	CategoryID string
	Limit      int
	Offset     int
}

// KRAFilter narrows a KRA listing. Zero values are ignored.
type KRAFilter struct {
	UserID   string
	Statuses []KRAStatus
}
