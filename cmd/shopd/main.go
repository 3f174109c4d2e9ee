// Command shopd runs the ordering engine interactively against a lessons
// service (catalogd or the real backend).
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/lesson-shop/internal/cart"
	"github.com/example/lesson-shop/internal/catalog"
	"github.com/example/lesson-shop/internal/checkout"
	"github.com/example/lesson-shop/internal/config"
	"github.com/example/lesson-shop/internal/pricing"
	"github.com/example/lesson-shop/internal/query"
	"github.com/example/lesson-shop/internal/remote"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	client := remote.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	store := catalog.NewStore()
	ledger := cart.NewLedger()
	agg := pricing.NewAggregator(store, ledger)
	controller := query.NewController(client, store, cfg.Query.Debounce, logger)
	defer controller.Close()
	orchestrator := checkout.NewOrchestrator(client, ledger, agg, store, controller.Refresh, logger)

	if err := controller.Start(ctx); err != nil {
		logger.Fatal("initial catalog fetch failed",
			zap.String("base_url", cfg.API.BaseURL),
			zap.Error(err))
	}

	fmt.Println("lesson-shop commands: list, search <text>, clear, sort <key> <asc|desc>, add <id>, remove <id>, drop <id>, cart, checkout <name> / <phone>, quit")
	printLessons(store, agg)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "quit", "exit":
			return

		case "list":
			printLessons(store, agg)

		case "search":
			if rest == "" {
				fmt.Println("usage: search <text>")
				continue
			}
			// The controller commits typed text only after the debounce
			// window, so give it time to fire before reprinting.
			controller.TypeSearch(rest)
			time.Sleep(cfg.Query.Debounce + 250*time.Millisecond)
			printLessons(store, agg)

		case "clear":
			if err := controller.ClearSearch(ctx); err != nil {
				fmt.Println("fetch failed:", err)
				continue
			}
			printLessons(store, agg)

		case "sort":
			key, dir, _ := strings.Cut(rest, " ")
			if dir == "" {
				dir = remote.DirAsc
			}
			if err := controller.SetSort(ctx, key, dir); err != nil {
				fmt.Println("fetch failed:", err)
				continue
			}
			printLessons(store, agg)

		case "add":
			lesson, ok := store.Get(rest)
			if !ok {
				fmt.Println("no such lesson:", rest)
				continue
			}
			if err := ledger.AddUnit(lesson); err != nil {
				if errors.Is(err, cart.ErrCapacityExceeded) {
					fmt.Println("no spaces left for", lesson.Subject)
					continue
				}
				fmt.Println("add failed:", err)
				continue
			}
			fmt.Printf("added %s (%d in cart, %d spaces left)\n",
				lesson.Subject, ledger.CountFor(lesson.ID), agg.RemainingCapacity(lesson.ID))

		case "remove":
			if ledger.RemoveUnit(rest) {
				fmt.Println("removed one unit")
			} else {
				fmt.Println("not in cart:", rest)
			}

		case "drop":
			n := ledger.RemoveAllUnits(rest)
			fmt.Printf("removed %d unit(s)\n", n)

		case "cart":
			printCart(agg)

		case "checkout":
			name, phone, ok := strings.Cut(rest, "/")
			if !ok {
				fmt.Println("usage: checkout <name> / <phone>")
				continue
			}
			err := orchestrator.Submit(ctx, strings.TrimSpace(name), strings.TrimSpace(phone))
			switch {
			case err == nil:
				fmt.Println("order placed")
				printLessons(store, agg)
			case errors.Is(err, checkout.ErrEmptyCart),
				errors.Is(err, checkout.ErrInvalidName),
				errors.Is(err, checkout.ErrInvalidPhone):
				fmt.Println("cannot submit:", err)
			default:
				fmt.Println("checkout failed, cart kept:", err)
			}

		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func printLessons(store *catalog.Store, agg *pricing.Aggregator) {
	lessons := store.Lessons()
	if len(lessons) == 0 {
		fmt.Println("(no lessons)")
		return
	}
	for _, l := range lessons {
		remaining := agg.RemainingCapacity(l.ID)
		fmt.Printf("%4s  %-22s %-18s Rs %8s  %d spaces (%s)\n",
			l.ID, l.Subject, l.Location, l.Price.StringFixed(2),
			remaining, pricing.SpaceLevelFor(remaining))
	}
}

func printCart(agg *pricing.Aggregator) {
	entries := agg.GroupedEntries()
	if len(entries) == 0 {
		fmt.Println("(cart is empty)")
		return
	}
	for _, e := range entries {
		fmt.Printf("%4s  %-22s x%d @ Rs %s\n", e.LessonID, e.Subject, e.Qty, e.Price.StringFixed(2))
	}
	fmt.Printf("subtotal Rs %s, VAT Rs %s, total Rs %s\n",
		agg.DisplaySubtotal(), agg.DisplayVAT(), agg.DisplayGrandTotal())
}
