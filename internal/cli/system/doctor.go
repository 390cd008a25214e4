package system

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/IlyaKukarkin/bee-bloom/internal/cli"
	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	"github.com/IlyaKukarkin/bee-bloom/internal/models"
	"github.com/IlyaKukarkin/bee-bloom/internal/repo"
)

type DoctorCmd struct {
	Fix bool `help:"Resequence every ordering scope to repair gaps and duplicates."`
}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := checkStoreFile(ctx); err != nil {
		fmt.Printf("❌ Store file: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store file: OK (%s)\n", ctx.Persister.Path())
	}

	if problems := checkOrdering(ctx); len(problems) > 0 {
		if c.Fix {
			fixOrdering(ctx)
			fmt.Printf("✓ Ordering: repaired %d scope(s)\n", len(problems))
		} else {
			fmt.Printf("⚠ Ordering: WARNING\n")
			for _, p := range problems {
				fmt.Printf("   %s\n", p)
			}
			fmt.Printf("   Run 'beebloom doctor --fix' to resequence.\n")
		}
	} else {
		fmt.Printf("✓ Ordering: OK\n")
	}

	if err := checkCheckRows(ctx); err != nil {
		fmt.Printf("❌ Check rows: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Check rows: OK\n")
	}

	if others := findConcurrentProcesses(); len(others) > 0 {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   %d other beebloom process(es) share this store file; last writer wins.\n", len(others))
	} else {
		fmt.Printf("✓ Concurrent processes: OK\n")
	}

	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreFile(ctx *cli.Context) error {
	if _, err := os.Stat(ctx.Persister.Path()); err != nil {
		return fmt.Errorf("store file not accessible: %w", err)
	}
	return nil
}

// checkOrdering reports every scope whose order values are not the exact
// sequence 0, 10, 20, ...
func checkOrdering(ctx *cli.Context) []string {
	var problems []string

	scopes := map[string][]int{}
	for _, h := range repo.OrderedHabits(ctx.Store) {
		scopes[h.GroupKey()] = append(scopes[h.GroupKey()], h.Order)
	}
	for key, orders := range scopes {
		name := "ungrouped"
		if key != "" {
			name = "group " + key
		}
		for i, order := range orders {
			if order != i*constants.OrderStep {
				problems = append(problems, fmt.Sprintf("%s: order values %v are not contiguous", name, orders))
				break
			}
		}
	}

	groupOrders := []int{}
	for _, g := range repo.OrderedGroups(ctx.Store) {
		groupOrders = append(groupOrders, g.Order)
	}
	for i, order := range groupOrders {
		if order != i*constants.OrderStep {
			problems = append(problems, fmt.Sprintf("groups: order values %v are not contiguous", groupOrders))
			break
		}
	}

	return problems
}

func fixOrdering(ctx *cli.Context) {
	repo.ResequenceHabits(ctx.Store, nil)
	for _, g := range repo.OrderedGroups(ctx.Store) {
		id := g.ID
		repo.ResequenceHabits(ctx.Store, &id)
	}
	repo.ResequenceGroups(ctx.Store)
}

// checkCheckRows verifies every check row id parses back into a habit id and
// a well-formed date key.
func checkCheckRows(ctx *cli.Context) error {
	for _, rowID := range ctx.Store.RowIDs(constants.TableChecks) {
		key, err := models.ParseCheckKey(rowID)
		if err != nil {
			return err
		}
		if _, err := time.Parse(constants.DateFormat, key.Date); err != nil {
			return fmt.Errorf("check row %q has malformed date %q", rowID, key.Date)
		}
	}
	return nil
}

func findConcurrentProcesses() []ps.Process {
	procs, err := ps.Processes()
	if err != nil {
		return nil
	}

	self := os.Getpid()
	var others []ps.Process
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			others = append(others, p)
		}
	}
	return others
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
