package persistence

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/store"
)

// Row policies. Each scope turns an actor into the predicate a row must
// satisfy to be visible to that actor. Admins are unscoped except for
// notifications, which only ever belong to their recipient.

func requireActor(actor account.Actor) error {
	if !actor.Authenticated() {
		return errs.ErrUnauthenticated
	}
	return nil
}

// investorIDsOf selects the investor rows linked to userID.
func investorIDsOf(userID string) sq.SelectBuilder {
	return sq.Select("id").From("investors").Where(sq.Eq{"user_id": userID})
}

// startupIDsOf selects the startups founded by userID.
func startupIDsOf(userID string) sq.SelectBuilder {
	return sq.Select("id").From("startups").Where(sq.Eq{"founder_id": userID})
}

// pipelineScope limits pipeline rows to the owning investor's user and the
// startup's founder.
func pipelineScope(actor account.Actor) ([]store.Option, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return nil, nil
	}
	return sqlOptions(sq.Or{
		sq.Expr("investor_id IN (?)", investorIDsOf(actor.UserID())),
		sq.Expr("startup_id IN (?)", startupIDsOf(actor.UserID())),
	})
}

// recipientScope limits pitch recipient rows to the recipient investor's
// user.
func recipientScope(actor account.Actor) ([]store.Option, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return nil, nil
	}
	return sqlOptions(sq.Expr("investor_id IN (?)", investorIDsOf(actor.UserID())))
}

// notificationScope limits notifications to their recipient.
func notificationScope(actor account.Actor) ([]store.Option, error) {
	if actor.UserID() == "" {
		return nil, errs.ErrUnauthenticated
	}
	return []store.Option{store.WithCondition("user_id", actor.UserID())}, nil
}

// sqlOptions renders squirrel predicates into store options.
func sqlOptions(preds ...sq.Sqlizer) ([]store.Option, error) {
	opts := make([]store.Option, 0, len(preds))
	for _, p := range preds {
		sql, args, err := p.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build predicate: %w", err)
		}
		if sql == "" {
			continue
		}
		opts = append(opts, store.WithWhere(sql, args...))
	}
	return opts, nil
}
