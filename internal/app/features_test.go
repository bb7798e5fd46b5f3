package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/numerator"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents"
)

type ledgerTestContext struct {
	svc     *Services
	numbers []string
	err     error
}

func (c *ledgerTestContext) reset() {
	c.svc = NewServices(NewMemoryBackend())
	c.numbers = nil
	c.err = nil
}

func (c *ledgerTestContext) aProductNamedMeasuredInWithMinimum(code, name, unit string, minQty int) error {
	_, err := c.svc.Products.Register(context.Background(), product.RegisterInput{
		Code: code, Name: name, Unit: unit, MinQty: int64(minQty),
	})
	return err
}

func (c *ledgerTestContext) iRegisterAProduct(code, name, unit string, minQty int) error {
	_, c.err = c.svc.Products.Register(context.Background(), product.RegisterInput{
		Code: code, Name: name, Unit: unit, MinQty: int64(minQty),
	})
	return nil
}

func (c *ledgerTestContext) iAddOf(qty int, code string) error {
	doc, err := c.svc.StockIn.RecordAddition(context.Background(), documents.RecordInput{
		ProductCode: code, Quantity: int64(qty),
	})
	c.err = err
	if err == nil {
		c.numbers = append(c.numbers, doc.Number)
	}
	return nil
}

func (c *ledgerTestContext) iIssueOf(qty int, code string) error {
	doc, err := c.svc.StockOut.RecordIssue(context.Background(), documents.RecordInput{
		ProductCode: code, Quantity: int64(qty),
	})
	c.err = err
	if err == nil {
		c.numbers = append(c.numbers, doc.Number)
	}
	return nil
}

func (c *ledgerTestContext) productHasInStock(code string, want int) error {
	if c.err != nil && !apperror.IsInsufficientStock(c.err) && !apperror.IsInvalidQuantity(c.err) {
		return fmt.Errorf("unexpected error: %w", c.err)
	}
	p, err := c.svc.Products.GetByCode(context.Background(), code)
	if err != nil {
		return err
	}
	if p.StockQty != int64(want) {
		return fmt.Errorf("expected stock %d, got %d", want, p.StockQty)
	}
	return nil
}

func (c *ledgerTestContext) productIsNamed(code, name string) error {
	p, err := c.svc.Products.GetByCode(context.Background(), code)
	if err != nil {
		return err
	}
	if p.Name != name {
		return fmt.Errorf("expected name %q, got %q", name, p.Name)
	}
	return nil
}

func (c *ledgerTestContext) theRequestIsRejectedWith(code string) error {
	if c.err == nil {
		return errors.New("expected the request to fail")
	}
	if !apperror.HasCode(c.err, code) {
		return fmt.Errorf("expected %s, got %v", code, c.err)
	}
	c.err = nil
	return nil
}

func (c *ledgerTestContext) theLastDocumentsHaveDistinctNumbers(n int) error {
	if len(c.numbers) < n {
		return fmt.Errorf("only %d documents recorded", len(c.numbers))
	}
	seen := make(map[string]bool)
	for _, num := range c.numbers[len(c.numbers)-n:] {
		if seen[num] {
			return fmt.Errorf("number %s used twice", num)
		}
		seen[num] = true
	}
	return nil
}

func (c *ledgerTestContext) everyDocumentNumberIsWellFormed() error {
	for _, num := range c.numbers {
		if !numerator.IsWellFormed(num) {
			return fmt.Errorf("malformed number %s", num)
		}
	}
	return nil
}

func (c *ledgerTestContext) theStockReportLists(names string) error {
	levels, err := c.svc.Reports.CurrentLevels(context.Background())
	if err != nil {
		return err
	}
	got := make([]string, len(levels))
	for i, l := range levels {
		got[i] = l.Name
	}
	if strings.Join(got, ", ") != names {
		return fmt.Errorf("expected %q, got %q", names, strings.Join(got, ", "))
	}
	return nil
}

func (c *ledgerTestContext) isBelowItsMinimum(name string) error {
	levels, err := c.svc.Reports.CurrentLevels(context.Background())
	if err != nil {
		return err
	}
	for _, l := range levels {
		if l.Name == name {
			if !l.BelowMinimum {
				return fmt.Errorf("%s has %d with minimum %d", name, l.StockQty, l.MinQty)
			}
			return nil
		}
	}
	return fmt.Errorf("%s not in report", name)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &ledgerTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a product "([^"]*)" named "([^"]*)" measured in "([^"]*)" with minimum (\d+)$`, tc.aProductNamedMeasuredInWithMinimum)

	// When steps
	ctx.Step(`^I register a product "([^"]*)" named "([^"]*)" measured in "([^"]*)" with minimum (\d+)$`, tc.iRegisterAProduct)
	ctx.Step(`^I add (-?\d+) of "([^"]*)"$`, tc.iAddOf)
	ctx.Step(`^I issue (-?\d+) of "([^"]*)"$`, tc.iIssueOf)

	// Then steps
	ctx.Step(`^product "([^"]*)" has (\d+) in stock$`, tc.productHasInStock)
	ctx.Step(`^product "([^"]*)" is named "([^"]*)"$`, tc.productIsNamed)
	ctx.Step(`^the request is rejected with "([^"]*)"$`, tc.theRequestIsRejectedWith)
	ctx.Step(`^the last (\d+) documents have distinct numbers$`, tc.theLastDocumentsHaveDistinctNumbers)
	ctx.Step(`^every document number is well formed$`, tc.everyDocumentNumberIsWellFormed)
	ctx.Step(`^the stock report lists "([^"]*)"$`, tc.theStockReportLists)
	ctx.Step(`^"([^"]*)" is below its minimum$`, tc.isBelowItsMinimum)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/stock_ledger.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
