package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/rebor-cli/internal/domain"
	"github.com/bnema/rebor-cli/internal/ports"
)

const (
	DefaultShortDelay = time.Second
	DefaultLongDelay  = time.Hour
)

const noAccountsMessage = "No accounts found!"

// Backoff is the fixed two-value delay applied after each task attempt.
type Backoff struct {
	Short time.Duration
	Long  time.Duration
}

func DefaultBackoff() Backoff {
	return Backoff{Short: DefaultShortDelay, Long: DefaultLongDelay}
}

func (b Backoff) After(result domain.TaskResult) time.Duration {
	if result.OK() {
		return b.Short
	}
	return b.Long
}

type PollerOption func(*Poller)

func WithBackoff(backoff Backoff) PollerOption {
	return func(p *Poller) {
		p.backoff = backoff
	}
}

func WithSleeper(sleeper ports.Sleeper) PollerOption {
	return func(p *Poller) {
		p.sleeper = sleeper
	}
}

func WithTasks(tasks ...domain.TaskID) PollerOption {
	return func(p *Poller) {
		p.tasks = tasks
	}
}

type Poller struct {
	accounts ports.AccountSource
	client   ports.TaskClient
	reporter ports.Reporter
	sleeper  ports.Sleeper
	backoff  Backoff
	tasks    []domain.TaskID
}

func NewPoller(accounts ports.AccountSource, client ports.TaskClient, reporter ports.Reporter, opts ...PollerOption) *Poller {
	p := &Poller{
		accounts: accounts,
		client:   client,
		reporter: reporter,
		sleeper:  ports.SystemSleeper{},
		backoff:  DefaultBackoff(),
		tasks:    domain.DailyTasks(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run loads the accounts once and then clears every task of every account
// in order until ctx ends. It returns nil when there is nothing to do and
// ctx.Err() when cancelled.
func (p *Poller) Run(ctx context.Context) error {
	accounts := p.accounts.Load(ctx)
	if len(accounts) == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.reporter.Error(noAccountsMessage)
		return nil
	}

	for _, account := range accounts {
		p.reporter.Info(fmt.Sprintf("Account ID: %s", account.User.ID), "account_id", account.User.ID)
	}

	if len(p.tasks) == 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	for {
		for _, account := range accounts {
			for _, taskID := range p.tasks {
				if err := ctx.Err(); err != nil {
					return err
				}

				result := p.attempt(ctx, taskID, account)
				if err := p.sleeper.Sleep(ctx, p.backoff.After(result)); err != nil {
					return err
				}
			}
		}
	}
}

// attempt isolates one account/task pair so a panic in the client cannot
// stop the loop for the remaining accounts.
func (p *Poller) attempt(ctx context.Context, taskID domain.TaskID, account domain.Credential) (result domain.TaskResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("task %s for account %s panicked: %v", taskID, account.User.ID, r)
			p.reporter.Error(err.Error(), "task_id", string(taskID), "account_id", account.User.ID)
			result = domain.TaskResult{TaskID: taskID, Outcome: domain.TaskTransportError, Err: err}
		}
	}()

	return p.client.CompleteTask(ctx, taskID, account)
}
