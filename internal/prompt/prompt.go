// Package prompt gathers the tier and perk-option selections interactively.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitonj/dim-aegis-wishlist/internal/domain"
)

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

var tierSelections = [][]domain.Tier{
	{domain.TierS},
	{domain.TierS, domain.TierA},
	{domain.TierS, domain.TierA, domain.TierB},
	domain.TierOrder,
}

// TierConfigs walks the user through tier selection then a perk option per
// selected tier. Invalid entries re-prompt; EOF on input is an error.
func (p *Prompter) TierConfigs() (map[domain.Tier]domain.TierConfig, error) {
	tiers, err := p.tierSelection()
	if err != nil {
		return nil, err
	}

	out := make(map[domain.Tier]domain.TierConfig, len(tiers))
	for _, tier := range tiers {
		opt, err := p.perkOption(tier)
		if err != nil {
			return nil, err
		}
		out[tier] = domain.TierConfig{Tier: tier, Option: opt}
	}
	return out, nil
}

func (p *Prompter) tierSelection() ([]domain.Tier, error) {
	for {
		fmt.Fprintln(p.out, "\nSelect tiers to include in wishlist:")
		fmt.Fprintln(p.out, "1. S tier only")
		fmt.Fprintln(p.out, "2. S and A tiers")
		fmt.Fprintln(p.out, "3. S, A, and B tiers")
		fmt.Fprintln(p.out, "4. All tiers")

		choice, err := p.readInt("Enter your choice (1-4): ")
		if err != nil {
			return nil, err
		}
		if choice >= 1 && choice <= len(tierSelections) {
			return tierSelections[choice-1], nil
		}
		fmt.Fprintln(p.out, "Invalid choice. Please enter a number between 1 and 4.")
	}
}

func (p *Prompter) perkOption(tier domain.Tier) (domain.PerkOption, error) {
	options := []domain.PerkOption{domain.PerkBothColumns, domain.PerkAnyColumn, domain.PerkAnyPerks}
	for {
		fmt.Fprintf(p.out, "\nSelect perk configuration for %s tier:\n", tier)
		fmt.Fprintln(p.out, "1. Only combinations with perks in both columns")
		fmt.Fprintln(p.out, "2. Combinations with at least one perk")
		fmt.Fprintln(p.out, "3. Include weapon even without perks")

		choice, err := p.readInt("Enter your choice (1-3): ")
		if err != nil {
			return "", err
		}
		if choice >= 1 && choice <= len(options) {
			return options[choice-1], nil
		}
		fmt.Fprintln(p.out, "Invalid choice. Please enter a number between 1 and 3.")
	}
}

func (p *Prompter) readInt(promptText string) (int, error) {
	for {
		fmt.Fprint(p.out, promptText)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		s := strings.TrimSpace(p.in.Text())
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a number.")
			continue
		}
		return n, nil
	}
}
