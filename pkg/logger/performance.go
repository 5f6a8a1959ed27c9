package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// Budget bounds how much the context loggers may write. Errors always pass.
type Budget struct {
	MinLevel   zapcore.Level
	PerSecond  int // 0 disables the limit
	SampleFrom int // identical entries per second kept before sampling, 0 disables
}

func ProductionBudget() Budget {
	return Budget{
		MinLevel:   zapcore.InfoLevel,
		PerSecond:  500,
		SampleFrom: 100,
	}
}

func DevelopmentBudget() Budget {
	return Budget{MinLevel: zapcore.DebugLevel}
}

func BudgetFor(environment string) Budget {
	if environment == "production" {
		return ProductionBudget()
	}
	return DevelopmentBudget()
}

// BudgetLogger is the zap logger behind the *WithContext builders.
type BudgetLogger struct {
	budget  Budget
	logger  *zap.Logger
	limiter *rate.Limiter
}

func NewBudgetLogger(base *zap.Logger, budget Budget) *BudgetLogger {
	if budget.SampleFrom > 0 {
		base = base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewSamplerWithOptions(core, time.Second, budget.SampleFrom, budget.SampleFrom)
		}))
	}

	bl := &BudgetLogger{budget: budget, logger: base}
	if budget.PerSecond > 0 {
		bl.limiter = rate.NewLimiter(rate.Limit(budget.PerSecond), budget.PerSecond)
	}
	return bl
}

// Enabled reports whether an entry at level would be written now. It
// consumes one token of the budget when it says yes.
func (bl *BudgetLogger) Enabled(level zapcore.Level) bool {
	if level < bl.budget.MinLevel {
		return false
	}
	if level >= zapcore.ErrorLevel || bl.limiter == nil {
		return true
	}
	return bl.limiter.Allow()
}

var budgetLogger *BudgetLogger

func getBudgetLogger() *BudgetLogger {
	if budgetLogger == nil {
		GetLogger()
	}
	return budgetLogger
}
