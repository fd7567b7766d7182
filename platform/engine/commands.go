package engine

// CmdType enumerates every client command the engine accepts. The socket
// layer maps event names onto these one to one.
type CmdType string

const (
	CmdRollDice      CmdType = "roll_dice"
	CmdDrawDeal      CmdType = "draw_deal" // small/big choice of a pending opportunity
	CmdBuyAsset      CmdType = "buy_asset"
	CmdSellAsset     CmdType = "sell_asset"
	CmdSellStock     CmdType = "sell_stock"
	CmdTakeLoan      CmdType = "take_loan"
	CmdRepayLoan     CmdType = "repay_loan"
	CmdTransferFunds CmdType = "transfer_funds"
	CmdTransferDeal  CmdType = "transfer_deal"
	CmdDonateCharity CmdType = "donate_charity"
	CmdSkipCharity   CmdType = "skip_charity"
	CmdBabyRoll      CmdType = "baby_roll"
	CmdDownsized     CmdType = "decision_downsized"
	CmdMLMPlaced     CmdType = "mlm_placed"
	CmdEndTurn       CmdType = "end_turn"
	CmdRequestState  CmdType = "request_state"
	CmdDeckContent   CmdType = "get_deck_content"
)

// Command is one client request addressed to a room. Fields beyond Player
// and Type are command-specific; unused ones stay zero.
type Command struct {
	Player string
	Type   CmdType

	Choice   string // deal size, downsized decision
	Amount   int    // loan/transfer amounts, dice count on a roll
	Quantity int
	CardID   string // card, offer or asset reference
	Target   string // transfer recipient
	Deck     string // deck kind for gallery requests
}

type result struct {
	payload interface{}
	err     error
}

type command struct {
	Command
	reply chan result
}
