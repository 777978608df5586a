package tasks

import (
	"context"
	"fmt"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
)

// CheckAuthorization attaches a bearer token to files that require one. It
// never fails: without entitlement the file is passed on without a token and
// the download decides.
type CheckAuthorization struct {
	svc  *Services
	name string
}

// NewCheckAuthorization returns the authorization task for the named package.
func NewCheckAuthorization(svc *Services, name string) *CheckAuthorization {
	return &CheckAuthorization{svc: svc, name: name}
}

// Execute exchanges the stored credentials for a token when needed.
func (t *CheckAuthorization) Execute(
	ctx context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	_ tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 1)
	resolved := mustKind(t.Name(), inputs, 0, domain.ParamPackageFile)

	unauthorized := domain.AuthenticatedFileParam(resolved.Version, resolved.File)
	if !resolved.File.RequiresAuthorization {
		return unauthorized, nil
	}

	if state.Config == nil || state.Config.Authentication == nil {
		t.svc.Logger.Warn(fmt.Sprintf("%s requires authorization but no authentication is configured", t.name))
		return unauthorized, nil
	}
	auth := *state.Config.Authentication
	creds := state.Manifest.Credentials

	token, err := t.svc.Auth.Authenticate(ctx, auth.AuthURL, creds.Username, creds.Token)
	if err != nil {
		t.svc.Logger.Warn(fmt.Sprintf("authentication for %s failed: %v", t.name, err))
		return unauthorized, nil
	}

	claims, err := t.svc.Auth.Validate(token, auth)
	if err != nil {
		t.svc.Logger.Warn(fmt.Sprintf("token for %s rejected: %v", t.name, err))
		return unauthorized, nil
	}
	if !claims.Entitled() {
		t.svc.Logger.Info(fmt.Sprintf("account is not entitled to %s", t.name))
		return unauthorized, nil
	}

	return domain.AuthorizedFileParam(resolved.Version, resolved.File, token), nil
}

// Dependencies resolves the package first.
func (t *CheckAuthorization) Dependencies() []tree.Dependency {
	return []tree.Dependency{
		tree.PreTask(NewResolvePackage(t.svc, t.name)),
	}
}

// Name identifies the task.
func (t *CheckAuthorization) Name() string {
	return fmt.Sprintf("CheckAuthorizationTask (for %q)", t.name)
}
