package ports

import "go.trai.ch/lift/internal/core/domain"

// InstallVerifier compares an install directory with its manifest.
//
//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type InstallVerifier interface {
	// Verify reports missing, modified and untracked files below dir.
	Verify(dir string, manifest *domain.Manifest) ([]domain.FileIssue, error)
}
