package umock

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
)

// SeamBDDTestContext holds the state of one scenario.
type SeamBDDTestContext struct {
	seam     *Seam[greeter]
	tokens   []*Injection[greeter]
	rejected error
}

func (c *SeamBDDTestContext) reset() {
	c.seam = nil
	c.tokens = nil
	c.rejected = nil
}

func (c *SeamBDDTestContext) aFreshSeam(name string) error {
	c.seam = NewSeam[greeter](name, named("real"))
	return nil
}

func (c *SeamBDDTestContext) iInjectDouble(name string) error {
	c.tokens = append(c.tokens, c.seam.Inject(named(name)))
	return nil
}

func (c *SeamBDDTestContext) iRestoreTheInnermostDouble() error {
	if len(c.tokens) == 0 {
		return errors.New("no double injected")
	}
	last := len(c.tokens) - 1
	c.tokens[last].Restore()
	c.tokens = c.tokens[:last]
	return nil
}

func (c *SeamBDDTestContext) iRestoreTheOutermostDouble() (err error) {
	if len(c.tokens) == 0 {
		return errors.New("no double injected")
	}
	defer func() {
		if r := recover(); r != nil {
			c.rejected = fmt.Errorf("%v", r)
		}
	}()
	c.tokens[0].Restore()
	return nil
}

func (c *SeamBDDTestContext) theRestoreShouldBeRejected() error {
	if c.rejected == nil {
		return errors.New("restore was accepted")
	}
	return nil
}

func (c *SeamBDDTestContext) theCurrentImplementationShouldBe(want string) error {
	if got := c.seam.Current().Greet(); got != want {
		return fmt.Errorf("current implementation is %q, want %q", got, want)
	}
	return nil
}

func TestSeamBDD(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			testCtx := &SeamBDDTestContext{}
			ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
				testCtx.reset()
				return c, nil
			})

			ctx.Step(`^a fresh "([^"]*)" seam$`, testCtx.aFreshSeam)
			ctx.Step(`^I inject double "([^"]*)"$`, testCtx.iInjectDouble)
			ctx.Step(`^I restore the innermost double$`, testCtx.iRestoreTheInnermostDouble)
			ctx.Step(`^I restore the outermost double$`, testCtx.iRestoreTheOutermostDouble)
			ctx.Step(`^the restore should be rejected$`, testCtx.theRestoreShouldBeRejected)
			ctx.Step(`^the current implementation should be "([^"]*)"$`, testCtx.theCurrentImplementationShouldBe)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
