// Package executor provides a ServiceExecutor that only describes the calls
// it receives. The real platform executor lives outside this module.
package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/ports"
)

// DryRunExecutor prints each call instead of performing it.
type DryRunExecutor struct {
	out io.Writer
	mu  sync.Mutex
}

// NewDryRunExecutor builds a new executor, out defaults to stdout.
func NewDryRunExecutor(out io.Writer) *DryRunExecutor {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunExecutor{out: out}
}

// CallService implements ports.ServiceExecutor.
func (e *DryRunExecutor) CallService(ctx context.Context, call domain.ServiceCall) (domain.ServiceResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ServiceResult{}, err
	}

	line := "would call " + call.Domain + "." + call.Service
	if len(call.EntityIDs) > 0 {
		line += " on " + strings.Join(call.EntityIDs, ", ")
	}
	if len(call.Data) > 0 {
		data, err := json.Marshal(call.Data)
		if err != nil {
			return domain.ServiceResult{}, fmt.Errorf("encode service data: %w", err)
		}
		line += " " + string(data)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := fmt.Fprintln(e.out, line); err != nil {
		return domain.ServiceResult{}, err
	}
	return domain.ServiceResult{Message: fmt.Sprintf("Dry run: %s.%s", call.Domain, call.Service)}, nil
}

var _ ports.ServiceExecutor = (*DryRunExecutor)(nil)
