package adapters

import (
	"github.com/google/wire"

	"github.com/coperacha/coperacha-cli/internal/adapters/abi"
	"github.com/coperacha/coperacha-cli/internal/adapters/boltstore"
	"github.com/coperacha/coperacha-cli/internal/adapters/fs"
	"github.com/coperacha/coperacha-cli/internal/adapters/interactive"
	"github.com/coperacha/coperacha-cli/internal/adapters/payouts"
	"github.com/coperacha/coperacha-cli/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigRepository), new(*fs.LocalConfigStoreAdapter)),
)

// StoreSet provides the ABI codec and the bolt store holding the ledger
// snapshot and the event log
var StoreSet = wire.NewSet(
	abi.NewLogCodec,
	boltstore.NewStore,
	wire.Bind(new(usecase.LedgerStore), new(*boltstore.Store)),
	wire.Bind(new(usecase.EventStore), new(*boltstore.Store)),
)

// PayoutSet provides the payout book used for executed withdrawals
var PayoutSet = wire.NewSet(
	payouts.NewProvider,
	wire.Bind(new(usecase.PayoutProvider), new(*payouts.Provider)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.VaultSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.ProposalSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.MemberSelector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	StoreSet,
	PayoutSet,
	InteractiveSet,
)
