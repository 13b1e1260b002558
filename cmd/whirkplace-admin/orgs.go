package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/whirkplace/whirkplace-api/internal/data"
	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	"github.com/whirkplace/whirkplace-api/internal/service"
)

type orgListOptions struct {
	Limit  int
	Offset int
}

type orgStatusOptions struct {
	ID     string
	Slug   string
	Status model.OrgStatus
	Yes    bool
}

func runOrgList(cmdCtx *commandContext, args []string) error {
	opts, err := parseOrgListFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		orgs, listErr := newOrganizationService(db).List(ctx, opts.Limit, opts.Offset)
		if listErr != nil {
			return fmt.Errorf("list organizations: %w", listErr)
		}
		return renderOrgList(orgs)
	})
}

func renderOrgList(orgs []*model.Organization) error {
	if len(orgs) == 0 {
		return writeln(os.Stdout, "No organizations found.")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tSLUG\tNAME\tPLAN\tSTATUS\tCREATED"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, org := range orgs {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			org.ID,
			org.Slug,
			org.Name,
			org.PlanTier,
			org.Status,
			org.CreatedAt.Format("2006-01-02"),
		); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

func runOrgStatus(cmdCtx *commandContext, args []string) error {
	opts, err := parseOrgStatusFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		svc := newOrganizationService(db)

		org, resolveErr := resolveOrg(ctx, svc, opts)
		if resolveErr != nil {
			return resolveErr
		}

		confirmOpts := orgStatusConfirmOptions{
			yes:    opts.Yes,
			target: fmt.Sprintf("organization %q (%s)", org.Slug, org.ID),
			status: opts.Status,
		}
		if confirmErr := confirmAction(confirmOpts, "change organization status"); confirmErr != nil {
			return confirmErr
		}

		updated, updateErr := svc.UpdateStatus(ctx, org.ID, opts.Status)
		if updateErr != nil {
			return fmt.Errorf("update organization status: %w", updateErr)
		}

		cmdCtx.Logger.Info("organization status updated",
			"organization_id", updated.ID,
			"slug", updated.Slug,
			"status", updated.Status)
		return nil
	})
}

func resolveOrg(ctx context.Context, svc *service.OrganizationService, opts orgStatusOptions) (*model.Organization, error) {
	if opts.ID != "" {
		org, err := svc.GetByID(ctx, opts.ID)
		if err != nil {
			return nil, fmt.Errorf("load organization %q: %w", opts.ID, err)
		}
		return org, nil
	}
	org, err := svc.GetBySlug(ctx, opts.Slug)
	if err != nil {
		return nil, fmt.Errorf("load organization %q: %w", opts.Slug, err)
	}
	return org, nil
}

func newOrganizationService(db *sql.DB) *service.OrganizationService {
	return service.NewOrganizationService(service.OrganizationServiceOptions{
		Orgs:  data.NewOrganizationRepo(db),
		Users: data.NewUserRepo(db),
	})
}

func parseOrgListFlags(args []string) (orgListOptions, error) {
	fs := flag.NewFlagSet("org-list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := orgListOptions{}
	fs.IntVar(&opts.Limit, "limit", 50, "Maximum number of organizations to list")
	fs.IntVar(&opts.Offset, "offset", 0, "Number of organizations to skip")

	if err := fs.Parse(args); err != nil {
		return orgListOptions{}, err
	}

	if opts.Limit < 1 {
		return orgListOptions{}, errors.New("--limit must be at least 1")
	}
	if opts.Offset < 0 {
		return orgListOptions{}, errors.New("--offset cannot be negative")
	}

	return opts, nil
}

func parseOrgStatusFlags(args []string) (orgStatusOptions, error) {
	fs := flag.NewFlagSet("org-status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := orgStatusOptions{}
	var status string
	fs.StringVar(&opts.ID, "id", "", "Organization ID")
	fs.StringVar(&opts.Slug, "slug", "", "Organization slug (alternative to --id)")
	fs.StringVar(&status, "status", "", "Target status: active, suspended, or deleted")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return orgStatusOptions{}, err
	}

	if (opts.ID == "") == (opts.Slug == "") {
		return orgStatusOptions{}, errors.New("exactly one of --id or --slug is required")
	}

	opts.Status = model.OrgStatus(strings.ToLower(strings.TrimSpace(status)))
	if !opts.Status.Valid() {
		return orgStatusOptions{}, fmt.Errorf("invalid --status %q (valid options: active, suspended, deleted)", status)
	}

	return opts, nil
}

type orgStatusConfirmOptions struct {
	yes    bool
	target string
	status model.OrgStatus
}

func (o orgStatusConfirmOptions) IsDryRun() bool { return false }
func (o orgStatusConfirmOptions) IsYes() bool    { return o.yes }
func (o orgStatusConfirmOptions) GetWarning() string {
	return fmt.Sprintf("WARNING: this will set the organization status to %q.", o.status)
}

func (o orgStatusConfirmOptions) GetTarget() string {
	return fmt.Sprintf("%s -> %s", o.target, o.status)
}
