package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/garyjia/travel-forms/internal/config"
	"github.com/garyjia/travel-forms/internal/container"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/expense"
	"github.com/garyjia/travel-forms/internal/domain/workflow"
	"github.com/garyjia/travel-forms/pkg/utils"
)

// App runs form actions from the command line against the configured
// endpoints
type App struct {
	configPath string
	envFile    string
	out        io.Writer
	errOut     io.Writer

	container *container.Container
}

// NewApp creates an App writing results to out and logs to errOut
func NewApp(out, errOut io.Writer) *App {
	return &App{
		configPath: "configs/config.yaml",
		envFile:    ".env",
		out:        out,
		errOut:     errOut,
	}
}

// start builds the container on first use
func (a *App) start(ctx context.Context) (*container.Container, error) {
	if a.container != nil {
		return a.container, nil
	}

	cfg, err := config.LoadWithEnv(a.configPath, a.envFile)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := utils.NewLoggerTo(utils.LoggerConfig{
		Level:  cfg.Logger.Level,
		Format: "console",
	}, a.errOut)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	c, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		return nil, err
	}
	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	a.container = c
	return c, nil
}

// Close releases the container if one was started
func (a *App) Close() error {
	if a.container == nil {
		return nil
	}
	err := a.container.Close()
	a.container = nil
	return err
}

func (a *App) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readJSON decodes the JSON file at path into dst
func readJSON(path string, dst interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// SubmitNotification posts a travel notification read from path
func (a *App) SubmitNotification(ctx context.Context, path string) error {
	var trip entity.TripDetails
	if err := readJSON(path, &trip); err != nil {
		return err
	}
	c, err := a.start(ctx)
	if err != nil {
		return err
	}
	result, err := c.Services().Notification.Submit(ctx, trip)
	if result != nil {
		_ = a.print(result)
	}
	return err
}

// SubmitApproval posts an approval decision read from path
func (a *App) SubmitApproval(ctx context.Context, path string) error {
	var approval entity.ApprovalDetails
	if err := readJSON(path, &approval); err != nil {
		return err
	}
	c, err := a.start(ctx)
	if err != nil {
		return err
	}
	result, err := c.Services().Approval.Submit(ctx, approval)
	if result != nil {
		_ = a.print(result)
	}
	return err
}

// SubmitInvoiceRequest posts an invoice request read from path
func (a *App) SubmitInvoiceRequest(ctx context.Context, path string) error {
	var req entity.InvoiceRequest
	if err := readJSON(path, &req); err != nil {
		return err
	}
	c, err := a.start(ctx)
	if err != nil {
		return err
	}
	result, err := c.Services().InvoiceRequest.Submit(ctx, req)
	if result != nil {
		_ = a.print(result)
	}
	return err
}

// expenseFile is the on-disk form of an expense report. Receipt paths are
// relative to the file.
type expenseFile struct {
	Trip     entity.TripDetails `json:"trip"`
	Expenses []struct {
		entity.ExpenseItem
		ReceiptPath string `json:"receiptPath"`
	} `json:"expenses"`
}

// buildReport fills a new draft from the expense file at path, the same way
// a user would through the tabs
func (a *App) buildReport(ctx context.Context, path string) (*container.Container, *expense.View, error) {
	var file expenseFile
	if err := readJSON(path, &file); err != nil {
		return nil, nil, err
	}
	c, err := a.start(ctx)
	if err != nil {
		return nil, nil, err
	}

	svc := c.Services().ExpenseReport
	view, err := svc.Create(ctx)
	if err != nil {
		return nil, nil, err
	}
	id := view.ID

	if _, err := svc.UpdateTrip(ctx, id, file.Trip); err != nil {
		return nil, nil, err
	}
	if view, err = svc.ChangeTab(ctx, id, workflow.StateExpenses); err != nil {
		return c, view, fmt.Errorf("trip details: %w", err)
	}

	dir := filepath.Dir(path)
	for i, entry := range file.Expenses {
		if _, err := svc.UpdatePending(ctx, id, entry.ExpenseItem); err != nil {
			return nil, nil, err
		}
		if entry.ReceiptPath != "" {
			receiptPath := entry.ReceiptPath
			if !filepath.IsAbs(receiptPath) {
				receiptPath = filepath.Join(dir, receiptPath)
			}
			data, err := os.ReadFile(receiptPath)
			if err != nil {
				return nil, nil, fmt.Errorf("expense %d receipt: %w", i+1, err)
			}
			if view, err = svc.AttachReceipt(ctx, id, filepath.Base(receiptPath), "", data); err != nil {
				return c, view, fmt.Errorf("expense %d receipt: %w", i+1, err)
			}
		}
		if view, err = svc.AddItem(ctx, id); err != nil {
			return c, view, fmt.Errorf("expense %d: %w", i+1, err)
		}
	}
	return c, view, nil
}

// SubmitExpenseReport builds and submits the expense report read from path
func (a *App) SubmitExpenseReport(ctx context.Context, path string) error {
	c, view, err := a.buildReport(ctx, path)
	if err != nil {
		if view != nil {
			_ = a.print(view)
		}
		return err
	}

	view, err = c.Services().ExpenseReport.Submit(ctx, view.ID)
	if view != nil {
		_ = a.print(view)
	}
	return err
}

// ExportExpenseReport builds the expense report read from path and writes it
// as a workbook to outPath
func (a *App) ExportExpenseReport(ctx context.Context, path, outPath string) error {
	c, view, err := a.buildReport(ctx, path)
	if err != nil {
		if view != nil {
			_ = a.print(view)
		}
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := c.Services().ExpenseReport.Export(ctx, view.ID, out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d expenses (total %s) to %s\n", len(view.Expenses), view.Total, outPath)
	return nil
}

// Duration prints the inclusive day count between two form dates
func (a *App) Duration(start, end string) {
	fmt.Fprintln(a.out, entity.InclusiveDays(start, end))
}
