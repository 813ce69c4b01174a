package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/vault"
	"github.com/coperacha/coperacha-cli/pkg/units"
)

// Script operations
const (
	OpCreate    = "create"
	OpDeposit   = "deposit"
	OpWithdraw  = "withdraw"
	OpAddMember = "add-member"
	OpVote      = "vote"
	OpExecute   = "execute"
)

// Script is a batch of vault operations read from YAML.
//
//	vault: Familia          # optional default vault, by name or address
//	steps:
//	  - op: deposit
//	    from: erin
//	    amount: "1.5"
//	  - op: withdraw
//	    from: alice
//	    recipient: shop
//	    amount: "1"
//	    description: rent
//	  - op: vote            # proposal defaults to the last one proposed
//	    from: bob
//	    vote: for
type Script struct {
	Vault string       `yaml:"vault"`
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptStep is a single operation. Addresses accept account aliases.
type ScriptStep struct {
	Op          string   `yaml:"op"`
	From        string   `yaml:"from"`
	Vault       string   `yaml:"vault"`
	Name        string   `yaml:"name"`
	Members     []string `yaml:"members"`
	Amount      string   `yaml:"amount"`
	Recipient   string   `yaml:"recipient"`
	Member      string   `yaml:"member"`
	Description string   `yaml:"description"`
	Proposal    *uint64  `yaml:"proposal"`
	Vote        string   `yaml:"vote"`
}

// ParseScript decodes a script, rejecting unknown fields
func ParseScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var script Script
	if err := dec.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty script")
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, step := range script.Steps {
		switch step.Op {
		case OpCreate, OpDeposit, OpWithdraw, OpAddMember, OpVote, OpExecute:
		default:
			return nil, fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}
	}
	return &script, nil
}

// ApplyScriptParams contains parameters for applying a script
type ApplyScriptParams struct {
	Script          *Script
	ContinueOnError bool
}

// StepResult is the outcome of one script step
type StepResult struct {
	Index      int
	Op         string
	Vault      common.Address
	ProposalID *uint64
	Logs       []domain.EventLog
	Err        error
}

// ApplyScriptResult contains the outcome of every attempted step
type ApplyScriptResult struct {
	Steps  []StepResult
	Failed int
}

// ApplyScript is the use case for running a batch of operations. Each step
// is its own committed operation; a failed step leaves earlier ones applied.
type ApplyScript struct {
	config *config.RuntimeConfig
	ledger *Ledger
	sink   ProgressSink
	log    *slog.Logger
}

// NewApplyScript creates a new ApplyScript use case
func NewApplyScript(cfg *config.RuntimeConfig, ledger *Ledger, sink ProgressSink, log *slog.Logger) *ApplyScript {
	return &ApplyScript{
		config: cfg,
		ledger: ledger,
		sink:   sink,
		log:    log.With("component", "ApplyScript"),
	}
}

// scriptState carries defaults from one step to the next
type scriptState struct {
	vault        string
	lastProposal *uint64
}

// Run executes the apply script use case
func (uc *ApplyScript) Run(ctx context.Context, params ApplyScriptParams) (*ApplyScriptResult, error) {
	if params.Script == nil || len(params.Script.Steps) == 0 {
		return nil, fmt.Errorf("script has no steps")
	}

	state := &scriptState{vault: params.Script.Vault}
	if state.vault == "" && uc.config.Vault != (common.Address{}) {
		state.vault = uc.config.Vault.Hex()
	}

	result := &ApplyScriptResult{}
	total := len(params.Script.Steps)
	for i, step := range params.Script.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   step.Op,
			Current: i + 1,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] %s", i+1, total, step.Op),
			Spinner: true,
		})

		sr := uc.runStep(ctx, i+1, step, state)
		result.Steps = append(result.Steps, sr)
		if sr.Err != nil {
			result.Failed++
			uc.sink.Error(fmt.Sprintf("step %d (%s): %v", sr.Index, sr.Op, sr.Err))
			if !params.ContinueOnError {
				break
			}
			continue
		}
		uc.sink.Info(fmt.Sprintf("step %d (%s): %d events", sr.Index, sr.Op, len(sr.Logs)))
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete", Current: len(result.Steps), Total: total})
	return result, nil
}

func (uc *ApplyScript) runStep(ctx context.Context, index int, step ScriptStep, state *scriptState) StepResult {
	sr := StepResult{Index: index, Op: step.Op}
	uc.log.Debug("applying step", "index", index, "op", step.Op)

	sr.Logs, sr.Err = uc.ledger.Update(ctx, func(reg *vault.Registry) error {
		if step.Op == OpCreate {
			members, err := uc.resolveAll(step.Members)
			if err != nil {
				return err
			}
			v, err := reg.CreateVault(ctx, step.Name, members)
			if err != nil {
				return err
			}
			sr.Vault = v.Address()
			state.vault = v.Address().Hex()
			return nil
		}

		ref := step.Vault
		if ref == "" {
			ref = state.vault
		}
		v, err := lookupVault(reg, ref)
		if err != nil {
			return err
		}
		sr.Vault = v.Address()
		state.vault = v.Address().Hex()

		from, err := uc.caller(step.From)
		if err != nil {
			return err
		}

		switch step.Op {
		case OpDeposit:
			amount, err := units.ParseAmount(step.Amount)
			if err != nil {
				return err
			}
			return v.Deposit(ctx, from, amount)

		case OpWithdraw:
			amount, err := units.ParseAmount(step.Amount)
			if err != nil {
				return err
			}
			recipient, err := uc.config.Accounts.Resolve(step.Recipient)
			if err != nil {
				return fmt.Errorf("recipient: %w", err)
			}
			id, err := v.ProposeWithdrawal(ctx, from, step.Description, recipient, amount)
			if err != nil {
				return err
			}
			state.lastProposal, sr.ProposalID = &id, &id
			return nil

		case OpAddMember:
			member, err := uc.config.Accounts.Resolve(step.Member)
			if err != nil {
				return fmt.Errorf("member: %w", err)
			}
			id, err := v.ProposeAddMember(ctx, from, step.Description, member)
			if err != nil {
				return err
			}
			state.lastProposal, sr.ProposalID = &id, &id
			return nil

		case OpVote, OpExecute:
			id := step.Proposal
			if id == nil {
				id = state.lastProposal
			}
			if id == nil {
				return fmt.Errorf("no proposal given and none proposed earlier in the script")
			}
			sr.ProposalID = id
			if step.Op == OpExecute {
				return v.ExecuteProposal(ctx, from, *id)
			}
			inFavor, err := parseSupport(step.Vote)
			if err != nil {
				return err
			}
			return v.Vote(ctx, from, *id, inFavor)
		}
		return fmt.Errorf("unknown op %q", step.Op)
	})
	return sr
}

func (uc *ApplyScript) caller(ref string) (common.Address, error) {
	if ref == "" {
		return sender(uc.config)
	}
	return uc.config.Accounts.Resolve(ref)
}

func (uc *ApplyScript) resolveAll(refs []string) ([]common.Address, error) {
	addrs := make([]common.Address, 0, len(refs))
	for _, ref := range refs {
		addr, err := uc.config.Accounts.Resolve(ref)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// lookupVault finds a vault by address or by name
func lookupVault(reg *vault.Registry, ref string) (*vault.Vault, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("step has no vault and no earlier step selected one")
	}
	if common.IsHexAddress(ref) {
		return reg.Vault(common.HexToAddress(ref))
	}
	for _, h := range reg.AllVaults() {
		v, err := reg.Vault(h)
		if err != nil {
			return nil, err
		}
		if v.Name() == ref {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrVaultNotFound, ref)
}

func parseSupport(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "for", "yes", "true":
		return true, nil
	case "against", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("vote must be \"for\" or \"against\", got %q", s)
}

// TotalLogs counts the logs emitted by all steps
func (r *ApplyScriptResult) TotalLogs() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Logs)
	}
	return n
}
