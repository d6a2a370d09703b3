package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bookswap-hub/bookswap/features/accounts"
	"github.com/bookswap-hub/bookswap/features/bookcatalog"
	"github.com/bookswap-hub/bookswap/features/query/bookdetails"
	"github.com/bookswap-hub/bookswap/features/query/bookshelf"
	"github.com/bookswap-hub/bookswap/features/query/swaplist"
	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	scenarioPropose  = "propose"
	scenarioDecide   = "decide"
	scenarioWithdraw = "withdraw"
	scenarioRelist   = "relist"

	scenarioTimeout = 5 * time.Second
	statsInterval   = 10 * time.Second

	logMsgLoadSeeded  = "loadgen: users and books seeded"
	logMsgLoadStats   = "loadgen: stats"
	logMsgLoadFailure = "loadgen: scenario failed"
	logAttrScenario   = "scenario"
)

var errNothingToDo = errors.New("nothing to do")

type loadCatalog interface {
	Create(ctx context.Context, ownerID uuid.UUID, input bookcatalog.BookInput, cover *bookcatalog.Cover) (bookdetails.BookDetails, error)
	SetStatus(ctx context.Context, bookID uuid.UUID, requesterID uuid.UUID, status core.BookStatus) (bookdetails.BookDetails, error)
	ListAvailableExcluding(ctx context.Context, userID uuid.UUID) (bookshelf.Bookshelf, error)
	ListOwnedBy(ctx context.Context, userID uuid.UUID) (bookshelf.Bookshelf, error)
}

type loadNegotiation interface {
	Propose(ctx context.Context, bookOffered uuid.UUID, bookRequested uuid.UUID, proposerID uuid.UUID) (swaplist.SwapInfo, error)
	Decide(ctx context.Context, swapID uuid.UUID, deciderID uuid.UUID, decision core.SwapDecision) (swaplist.SwapInfo, error)
	Withdraw(ctx context.Context, swapID uuid.UUID, requesterID uuid.UUID) error
	ListReceived(ctx context.Context, userID uuid.UUID) (swaplist.SwapList, error)
	ListSent(ctx context.Context, userID uuid.UUID) (swaplist.SwapList, error)
}

type loadAccounts interface {
	Register(ctx context.Context, registration accounts.Registration) (accounts.Profile, error)
}

// loadConfig is set from the loadgen flags.
type loadConfig struct {
	Rate         int
	Workers      int
	Users        int
	BooksPerUser int
	// Weights of propose, decide, withdraw and relist, in percent.
	Weights [4]int
}

// loadStats counts the executed scenarios. Rejected ones hit an expected domain rule,
// e.g. a book that was swapped by a concurrent scenario.
type loadStats struct {
	Executed int64
	Rejected int64
	Skipped  int64
	Failed   int64
}

// LoadGenerator drives the swap workflow at a fixed rate against the facades.
type LoadGenerator struct {
	catalog     loadCatalog
	negotiation loadNegotiation
	accounts    loadAccounts
	config      loadConfig
	logger      *slog.Logger

	mu    sync.RWMutex
	users []uuid.UUID

	executed atomic.Int64
	rejected atomic.Int64
	skipped  atomic.Int64
	failed   atomic.Int64
}

func NewLoadGenerator(
	catalog loadCatalog,
	negotiation loadNegotiation,
	accts loadAccounts,
	config loadConfig,
	logger *slog.Logger,
) *LoadGenerator {

	return &LoadGenerator{
		catalog:     catalog,
		negotiation: negotiation,
		accounts:    accts,
		config:      config,
		logger:      logger,
	}
}

// Seed registers the users and lists their books.
func (lg *LoadGenerator) Seed(ctx context.Context) error {
	run := uuid.NewString()[:8]

	for u := range lg.config.Users {
		profile, err := lg.accounts.Register(ctx, accounts.Registration{
			FullName: fmt.Sprintf("Load Reader %d", u+1),
			Email:    fmt.Sprintf("loadgen-%s-%d@example.com", run, u+1),
			Password: "loadgen-password",
		})
		if err != nil {
			return err
		}

		userID := uuid.MustParse(profile.UserID)
		for b := range lg.config.BooksPerUser {
			_, err = lg.catalog.Create(ctx, userID, bookcatalog.BookInput{
				Title:  fmt.Sprintf("Load Test Book %d-%d", u+1, b+1),
				Author: "Test Author",
			}, nil)
			if err != nil {
				return err
			}
		}

		lg.mu.Lock()
		lg.users = append(lg.users, userID)
		lg.mu.Unlock()
	}

	lg.logger.InfoContext(ctx, logMsgLoadSeeded, "users", lg.config.Users, "books_per_user", lg.config.BooksPerUser)

	return nil
}

// Run executes scenarios at the configured rate until ctx is done.
func (lg *LoadGenerator) Run(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Limit(lg.config.Rate), 1)
	start := time.Now()

	reporterDone := make(chan struct{})
	go lg.reportStats(ctx, start, reporterDone)

	group := &errgroup.Group{}
	group.SetLimit(lg.config.Workers)

	for limiter.Wait(ctx) == nil {
		user, ok := lg.randomUser()
		if !ok {
			break
		}

		scenario := scenarioFor(rand.IntN(100), lg.config.Weights)
		group.Go(func() error {
			lg.execute(ctx, scenario, user)
			return nil
		})
	}

	_ = group.Wait()
	<-reporterDone
	lg.logStats(context.WithoutCancel(ctx), "final", start)

	return nil
}

// Stats returns a snapshot of the counters.
func (lg *LoadGenerator) Stats() loadStats {
	return loadStats{
		Executed: lg.executed.Load(),
		Rejected: lg.rejected.Load(),
		Skipped:  lg.skipped.Load(),
		Failed:   lg.failed.Load(),
	}
}

func (lg *LoadGenerator) execute(ctx context.Context, scenario string, user uuid.UUID) {
	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), scenarioTimeout)
	defer cancel()

	var err error
	switch scenario {
	case scenarioPropose:
		err = lg.propose(opCtx, user)
	case scenarioDecide:
		err = lg.decide(opCtx, user)
	case scenarioWithdraw:
		err = lg.withdraw(opCtx, user)
	default:
		err = lg.relist(opCtx, user)
	}

	lg.executed.Add(1)

	switch {
	case err == nil:
	case errors.Is(err, errNothingToDo):
		lg.skipped.Add(1)
	case isExpectedRejection(err):
		lg.rejected.Add(1)
	default:
		lg.failed.Add(1)
		lg.logger.WarnContext(opCtx, logMsgLoadFailure, logAttrScenario, scenario, logAttrErr, err.Error())
	}
}

// propose offers one of the user's available books for a random available book of somebody else.
func (lg *LoadGenerator) propose(ctx context.Context, user uuid.UUID) error {
	own, err := lg.catalog.ListOwnedBy(ctx, user)
	if err != nil {
		return err
	}

	offered, ok := randomBook(own.Books, core.BookStatusAvailable)
	if !ok {
		return errNothingToDo
	}

	others, err := lg.catalog.ListAvailableExcluding(ctx, user)
	if err != nil {
		return err
	}

	requested, ok := randomBook(others.Books, core.BookStatusAvailable)
	if !ok {
		return errNothingToDo
	}

	_, err = lg.negotiation.Propose(ctx, uuid.MustParse(offered.BookID), uuid.MustParse(requested.BookID), user)

	return err
}

// decide accepts or rejects a random pending swap the user received.
func (lg *LoadGenerator) decide(ctx context.Context, user uuid.UUID) error {
	received, err := lg.negotiation.ListReceived(ctx, user)
	if err != nil {
		return err
	}

	swap, ok := randomPendingSwap(received.Swaps)
	if !ok {
		return errNothingToDo
	}

	decision := core.SwapDecisionReject
	if rand.IntN(2) == 0 {
		decision = core.SwapDecisionAccept
	}

	_, err = lg.negotiation.Decide(ctx, uuid.MustParse(swap.SwapID), user, decision)

	return err
}

// withdraw takes back a random pending swap the user sent.
func (lg *LoadGenerator) withdraw(ctx context.Context, user uuid.UUID) error {
	sent, err := lg.negotiation.ListSent(ctx, user)
	if err != nil {
		return err
	}

	swap, ok := randomPendingSwap(sent.Swaps)
	if !ok {
		return errNothingToDo
	}

	return lg.negotiation.Withdraw(ctx, uuid.MustParse(swap.SwapID), user)
}

// relist makes a swapped book of the user available again, which keeps books in circulation.
func (lg *LoadGenerator) relist(ctx context.Context, user uuid.UUID) error {
	own, err := lg.catalog.ListOwnedBy(ctx, user)
	if err != nil {
		return err
	}

	book, ok := randomBook(own.Books, core.BookStatusSwapped)
	if !ok {
		return errNothingToDo
	}

	_, err = lg.catalog.SetStatus(ctx, uuid.MustParse(book.BookID), user, core.BookStatusAvailable)

	return err
}

func (lg *LoadGenerator) randomUser() (uuid.UUID, bool) {
	lg.mu.RLock()
	defer lg.mu.RUnlock()

	if len(lg.users) == 0 {
		return uuid.Nil, false
	}

	return lg.users[rand.IntN(len(lg.users))], true
}

func (lg *LoadGenerator) reportStats(ctx context.Context, start time.Time, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lg.logStats(ctx, "current", start)
		}
	}
}

func (lg *LoadGenerator) logStats(ctx context.Context, phase string, start time.Time) {
	stats := lg.Stats()
	elapsed := time.Since(start)

	lg.logger.InfoContext(ctx, logMsgLoadStats,
		"phase", phase,
		"executed", stats.Executed,
		"rejected", stats.Rejected,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"per_second", float64(stats.Executed)/max(elapsed.Seconds(), 1e-9),
		"goroutines", runtime.NumGoroutine(),
	)
}

// scenarioFor maps r in [0, 100) onto the weights of propose, decide, withdraw and relist.
func scenarioFor(r int, weights [4]int) string {
	scenarios := [4]string{scenarioPropose, scenarioDecide, scenarioWithdraw, scenarioRelist}

	bound := 0
	for i, weight := range weights {
		bound += weight
		if r < bound {
			return scenarios[i]
		}
	}

	return scenarioRelist
}

// isExpectedRejection reports errors that concurrent scenarios legitimately cause each other.
func isExpectedRejection(err error) bool {
	return errors.Is(err, core.ErrBookUnavailable) ||
		errors.Is(err, core.ErrInvalidTransition) ||
		errors.Is(err, core.ErrNotFound)
}

func randomBook(books []bookshelf.BookInfo, status core.BookStatus) (bookshelf.BookInfo, bool) {
	candidates := make([]bookshelf.BookInfo, 0, len(books))
	for _, book := range books {
		if book.Status == status {
			candidates = append(candidates, book)
		}
	}

	if len(candidates) == 0 {
		return bookshelf.BookInfo{}, false
	}

	return candidates[rand.IntN(len(candidates))], true
}

func randomPendingSwap(swaps []swaplist.SwapInfo) (swaplist.SwapInfo, bool) {
	candidates := make([]swaplist.SwapInfo, 0, len(swaps))
	for _, swap := range swaps {
		if swap.Status == core.SwapStatusPending {
			candidates = append(candidates, swap)
		}
	}

	if len(candidates) == 0 {
		return swaplist.SwapInfo{}, false
	}

	return candidates[rand.IntN(len(candidates))], true
}
