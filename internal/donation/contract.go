// Package donation encodes and decodes calls against the fund-raising
// contract. The contract itself is external; this package only packs
// calldata for donations and decodes project records from read calls.
package donation

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const contractABI = `[
  {"constant":false,"inputs":[{"name":"_projectId","type":"uint256"}],"name":"donate","outputs":[],"payable":true,"stateMutability":"payable","type":"function"},
  {"constant":true,"inputs":[{"name":"_projectId","type":"uint256"}],"name":"getProjectDetails","outputs":[{"name":"id","type":"uint256"},{"name":"title","type":"string"},{"name":"goal","type":"uint256"},{"name":"description","type":"string"},{"name":"deadline","type":"uint256"},{"name":"owner","type":"address"},{"name":"totalFundsRaised","type":"uint256"},{"name":"claimed","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"},
  {"constant":true,"inputs":[],"name":"projectCount","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
  {"anonymous":false,"inputs":[{"indexed":false,"name":"projectId","type":"uint256"},{"indexed":false,"name":"donor","type":"address"},{"indexed":false,"name":"amount","type":"uint256"},{"indexed":false,"name":"certificateId","type":"uint256"}],"name":"DonationMade","type":"event"}
]`

// DonateMethodABI is the JSON fragment of the donate method, passed to the
// custodial wallet API verbatim for execute_contract requests.
const DonateMethodABI = `{"constant":false,"inputs":[{"name":"_projectId","type":"uint256"}],"name":"donate","outputs":[],"payable":true,"stateMutability":"payable","type":"function"}`

var parsedABI = mustParseABI()

func mustParseABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		panic("donation: invalid contract ABI: " + err.Error())
	}
	return parsed
}

// Project is one fund-raising project record.
type Project struct {
	ID               *big.Int
	Title            string
	Goal             *big.Int
	Description      string
	Deadline         *big.Int
	Owner            common.Address
	TotalFundsRaised *big.Int
	Claimed          bool
}

// Ended reports whether the project deadline has passed.
func (p *Project) Ended(now time.Time) bool {
	return p.Deadline != nil && p.Deadline.Int64() <= now.Unix()
}

// ProgressPercent returns raised/goal as a percentage, 0 when the goal is
// unset.
func (p *Project) ProgressPercent() float64 {
	if p.Goal == nil || p.Goal.Sign() == 0 || p.TotalFundsRaised == nil {
		return 0
	}
	raised := new(big.Float).SetInt(p.TotalFundsRaised)
	goal := new(big.Float).SetInt(p.Goal)
	ratio, _ := new(big.Float).Quo(raised, goal).Float64()
	return ratio * 100
}

// PackDonate builds the calldata of donate(projectId).
func PackDonate(projectID *big.Int) ([]byte, error) {
	data, err := parsedABI.Pack("donate", projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to pack donate call: %w", err)
	}
	return data, nil
}

// PackProjectCount builds the calldata of projectCount().
func PackProjectCount() ([]byte, error) {
	data, err := parsedABI.Pack("projectCount")
	if err != nil {
		return nil, fmt.Errorf("failed to pack projectCount call: %w", err)
	}
	return data, nil
}

// PackGetProjectDetails builds the calldata of getProjectDetails(projectId).
func PackGetProjectDetails(projectID *big.Int) ([]byte, error) {
	data, err := parsedABI.Pack("getProjectDetails", projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to pack getProjectDetails call: %w", err)
	}
	return data, nil
}

// UnpackProjectCount decodes the result of projectCount().
func UnpackProjectCount(data []byte) (*big.Int, error) {
	out, err := parsedABI.Unpack("projectCount", data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack projectCount result: %w", err)
	}
	count, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected projectCount result type %T", out[0])
	}
	return count, nil
}

// UnpackProjectDetails decodes the result of getProjectDetails.
func UnpackProjectDetails(data []byte) (*Project, error) {
	out, err := parsedABI.Unpack("getProjectDetails", data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack getProjectDetails result: %w", err)
	}
	if len(out) != 8 {
		return nil, fmt.Errorf("unexpected getProjectDetails result arity %d", len(out))
	}

	project := &Project{}
	var ok bool
	if project.ID, ok = out[0].(*big.Int); !ok {
		return nil, fmt.Errorf("unexpected project id type %T", out[0])
	}
	if project.Title, ok = out[1].(string); !ok {
		return nil, fmt.Errorf("unexpected project title type %T", out[1])
	}
	if project.Goal, ok = out[2].(*big.Int); !ok {
		return nil, fmt.Errorf("unexpected project goal type %T", out[2])
	}
	if project.Description, ok = out[3].(string); !ok {
		return nil, fmt.Errorf("unexpected project description type %T", out[3])
	}
	if project.Deadline, ok = out[4].(*big.Int); !ok {
		return nil, fmt.Errorf("unexpected project deadline type %T", out[4])
	}
	if project.Owner, ok = out[5].(common.Address); !ok {
		return nil, fmt.Errorf("unexpected project owner type %T", out[5])
	}
	if project.TotalFundsRaised, ok = out[6].(*big.Int); !ok {
		return nil, fmt.Errorf("unexpected project funds type %T", out[6])
	}
	if project.Claimed, ok = out[7].(bool); !ok {
		return nil, fmt.Errorf("unexpected project claimed type %T", out[7])
	}

	return project, nil
}
