package middleware

import tele "gopkg.in/telebot.v4"

// AdminOptions defines how admin-only checks behave. AdminID always passes;
// IsAdmin, when set, may admit additional users (e.g. flagged in storage).
type AdminOptions struct {
	AdminID  int64
	IsAdmin  func(userID int64) bool
	OnReject tele.HandlerFunc
}

func (o AdminOptions) allows(userID int64) bool {
	if o.AdminID != 0 && userID == o.AdminID {
		return true
	}
	if o.IsAdmin != nil && o.IsAdmin(userID) {
		return true
	}
	return o.AdminID == 0 && o.IsAdmin == nil
}

// AdminOnlyMiddleware ensures that only admin users reach downstream handlers.
// Rejected updates get the OnReject response or are silently dropped.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || !opts.allows(sender.ID) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}

// BlockOptions gates updates from banned users before any handler runs.
type BlockOptions struct {
	IsBanned func(userID int64) bool
}

// BlockBannedMiddleware silently drops updates from banned users.
func BlockBannedMiddleware(opts BlockOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.IsBanned != nil {
				if sender := c.Sender(); sender != nil && opts.IsBanned(sender.ID) {
					return nil
				}
			}
			return next(c)
		}
	}
}
