package services

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"github.com/cyphera/kaia-bot/internal/chain"
	"github.com/cyphera/kaia-bot/internal/donation"
	"github.com/cyphera/kaia-bot/internal/logger"
)

// maxListedProjects caps how many records a single listing reads from the
// contract.
const maxListedProjects = 20

// ProjectService reads fund-raising project records from the contract.
type ProjectService struct {
	rpc             chain.RPC
	contractAddress string
	logger          *zap.Logger
}

// NewProjectService creates a project reader for the given contract.
func NewProjectService(rpc chain.RPC, contractAddress string) *ProjectService {
	return &ProjectService{
		rpc:             rpc,
		contractAddress: contractAddress,
		logger:          logger.Log,
	}
}

// ListProjects returns the most recent project records, newest first.
// Project ids are assigned by the contract starting at 1.
func (s *ProjectService) ListProjects(ctx context.Context) ([]donation.Project, error) {
	countData, err := donation.PackProjectCount()
	if err != nil {
		return nil, ProtocolErr("failed to encode projectCount call")
	}
	out, err := s.rpc.CallContract(ctx, s.contractAddress, countData)
	if err != nil {
		return nil, ExternalErr("failed to read project count", err)
	}
	count, err := donation.UnpackProjectCount(out)
	if err != nil {
		return nil, ExternalErr("failed to decode project count", err)
	}

	total := count.Int64()
	first := int64(1)
	if total > maxListedProjects {
		first = total - maxListedProjects + 1
	}

	projects := make([]donation.Project, 0, total-first+1)
	for id := total; id >= first; id-- {
		project, err := s.GetProject(ctx, big.NewInt(id))
		if err != nil {
			// A single unreadable record should not hide the rest.
			s.logger.Warn("failed to read project",
				zap.Int64("project_id", id),
				zap.Error(err))
			continue
		}
		projects = append(projects, *project)
	}

	return projects, nil
}

// GetProject reads one project record.
func (s *ProjectService) GetProject(ctx context.Context, projectID *big.Int) (*donation.Project, error) {
	data, err := donation.PackGetProjectDetails(projectID)
	if err != nil {
		return nil, ProtocolErr("failed to encode getProjectDetails call")
	}
	out, err := s.rpc.CallContract(ctx, s.contractAddress, data)
	if err != nil {
		return nil, ExternalErr("failed to read project details", err)
	}
	project, err := donation.UnpackProjectDetails(out)
	if err != nil {
		return nil, ExternalErr("failed to decode project details", err)
	}
	return project, nil
}
