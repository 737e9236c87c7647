package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tacogips/rptnew/internal/debug"
	"github.com/tacogips/rptnew/internal/report"
	"github.com/tacogips/rptnew/internal/template/model"
)

// CheckTemplateOptions holds options for template validation.
type CheckTemplateOptions struct {
	// Path is the file or directory path to check.
	Path string
	// Recursive indicates whether to check subdirectories.
	Recursive bool
	// Extension selects the files checked in directories. Empty uses the
	// report extension. Files named explicitly are always checked.
	Extension string
}

// CheckResult holds the results of template validation.
type CheckResult struct {
	// FilesChecked is the number of files checked.
	FilesChecked int
	// FilesWithErrors is the number of files with validation errors.
	FilesWithErrors int
	// Errors is the list of validation errors found.
	Errors []CheckError
}

// CheckError represents a problem found in a template file.
type CheckError struct {
	// File is the file path where the error occurred.
	File string
	// Message is the error message.
	Message string
}

// CheckTemplate validates report templates before they are added to the
// user template directory.
func CheckTemplate(ctx context.Context, opts CheckTemplateOptions) (*CheckResult, error) {
	result := &CheckResult{Errors: []CheckError{}}

	ext := opts.Extension
	if ext == "" {
		ext = model.ReportExtension
	}

	absPath, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, NewValidationError("failed to get absolute path", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("path not found: %s", absPath), err)
	}

	if info.IsDir() {
		err = checkDirectory(ctx, absPath, ext, opts.Recursive, result)
	} else {
		err = checkFile(ctx, absPath, result)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// checkDirectory checks every template file in a directory.
func checkDirectory(ctx context.Context, dirPath, ext string, recursive bool, result *CheckResult) error {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return NewAppError(IOReadError, fmt.Sprintf("failed to read directory: %s", dirPath), err)
	}

	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// Skip hidden files and directories
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		if entry.IsDir() {
			if recursive {
				if err := checkDirectory(ctx, fullPath, ext, recursive, result); err != nil {
					return err
				}
			}
			continue
		}

		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), ext) {
			if err := checkFile(ctx, fullPath, result); err != nil {
				return err
			}
		}
	}

	return nil
}

// checkFile validates a single template file.
func checkFile(ctx context.Context, filePath string, result *CheckResult) error {
	if err := ctx.Err(); err != nil {
		return NewAppError(UserCancelled, "check cancelled", err)
	}

	debug.Debug("[app] Checking template: %s", filePath)
	result.FilesChecked++

	design, err := report.Open(filePath)
	if err != nil {
		result.FilesWithErrors++
		result.Errors = append(result.Errors, CheckError{File: filePath, Message: err.Error()})
		return nil
	}

	problems := design.Problems()
	if len(problems) > 0 {
		result.FilesWithErrors++
		for _, p := range problems {
			result.Errors = append(result.Errors, CheckError{File: filePath, Message: p})
		}
	}
	return nil
}
