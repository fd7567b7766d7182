package engine

import (
	"math/rand"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/mag8888/ratrace-backend/platform/board"
	"github.com/mag8888/ratrace-backend/platform/config"
	"github.com/mag8888/ratrace-backend/platform/deck"
	"github.com/mag8888/ratrace-backend/platform/logging"
)

// Phase is the position of the turn state machine.
type Phase string

const (
	PhaseRoll        Phase = "ROLL"
	PhaseOpportunity Phase = "OPPORTUNITY_CHOICE"
	PhaseAction      Phase = "ACTION"
	PhaseCharity     Phase = "CHARITY_CHOICE"
	PhaseBaby        Phase = "BABY_ROLL"
	PhaseDownsized   Phase = "DOWNSIZED_DECISION"
	PhaseMLM         Phase = "MLM_PLACEMENT"
	PhaseEnd         Phase = "END"
)

// Broadcaster delivers a server-originated event to every client of a room.
type Broadcaster interface {
	Broadcast(roomID, event string, payload interface{})
}

// Seat is one roster entry a room is started with.
type Seat struct {
	ID    string
	Name  string
	Glyph string
}

// Room owns all mutable state of one game session. Every mutation happens on
// the actor goroutine; commands arrive through a single ordered channel, so
// out-of-turn market actions are serialized with everything else and can be
// re-validated right before they apply.
type Room struct {
	ID    string
	rules config.Rules
	out   Broadcaster
	log   *logrus.Entry

	players []*Player
	decks   map[deck.CardKind]*deck.Deck
	market  *MarketBoard
	journal *Journal
	ledger  *Ledger

	phase        Phase
	turnIdx      int
	deadline     time.Time
	winnerID     string
	lastRoll     int
	dreamPending bool

	rnd  *rand.Rand
	cmds chan command
	done chan struct{}
}

func NewRoom(id string, seats []Seat, rules config.Rules, out Broadcaster) *Room {
	r := &Room{
		ID:      id,
		rules:   rules,
		out:     out,
		log:     logging.Room(id),
		market:  NewMarketBoard(),
		journal: NewJournal(),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		cmds:    make(chan command),
		done:    make(chan struct{}),
		phase:   PhaseRoll,
	}
	r.ledger = NewLedger(rules, r.journal)
	r.decks = map[deck.CardKind]*deck.Deck{
		deck.DealSmall: deck.New(deck.DealSmall),
		deck.DealBig:   deck.New(deck.DealBig),
		deck.Expense:   deck.New(deck.Expense),
		deck.Market:    deck.New(deck.Market),
	}

	dreams := board.DreamIndexes()
	for i, seat := range seats {
		r.players = append(r.players, &Player{
			ID:              seat.ID,
			Name:            seat.Name,
			Glyph:           seat.Glyph,
			Ring:            board.RatRace,
			Cash:            rules.StartingCash,
			Salary:          rules.StartingSalary,
			BaseExpenses:    rules.StartingExpense,
			PerChildExpense: rules.PerChildExpense,
			DreamIndex:      dreams[i%len(dreams)],
		})
	}
	r.deadline = time.Now().Add(rules.TurnDeadline())
	return r
}

// Start launches the actor goroutine. The initial snapshot is taken before
// the actor is live so nothing mutates state under it.
func (r *Room) Start() {
	snap := r.Snapshot()
	go r.run()
	r.out.Broadcast(r.ID, "game-start", snap)
	r.log.WithField("players", len(r.players)).Info("game started")
}

// Stop tears the actor down; queued commands fail with ErrRoomClosed.
func (r *Room) Stop() {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
}

// Do submits a command and waits for its outcome. Safe from any goroutine.
func (r *Room) Do(cmd Command) (interface{}, error) {
	c := command{Command: cmd, reply: make(chan result, 1)}
	select {
	case r.cmds <- c:
	case <-r.done:
		return nil, ErrRoomClosed
	}
	select {
	case res := <-c.reply:
		return res.payload, res.err
	case <-r.done:
		return nil, ErrRoomClosed
	}
}

func (r *Room) run() {
	timer := time.NewTimer(time.Until(r.deadline))
	defer timer.Stop()
	for {
		select {
		case c := <-r.cmds:
			c.reply <- r.apply(c.Command)
		case <-timer.C:
			r.onDeadline()
		case <-r.done:
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(time.Until(r.deadline))
	}
}

func (r *Room) apply(cmd Command) result {
	// read-only commands stay legal after a win
	switch cmd.Type {
	case CmdRequestState:
		return result{payload: r.Snapshot()}
	case CmdDeckContent:
		return r.deckContent(cmd)
	}

	if r.winnerID != "" {
		return result{err: ErrGameOver}
	}
	p := r.player(cmd.Player)
	if p == nil || p.Bankrupt {
		return result{err: ErrUnknownPlayer}
	}

	var payload interface{}
	var err error
	switch cmd.Type {
	case CmdRollDice:
		payload, err = r.rollDice(p, cmd.Amount)
	case CmdDrawDeal:
		err = r.drawDeal(p, cmd.Choice)
	case CmdBuyAsset:
		err = r.buyAsset(p, cmd)
	case CmdSellAsset:
		err = r.sellAsset(p, cmd.CardID, 0)
	case CmdSellStock:
		err = r.sellAsset(p, cmd.CardID, cmd.Quantity)
	case CmdTakeLoan:
		err = r.ledger.TakeLoan(p, cmd.Amount)
	case CmdRepayLoan:
		err = r.ledger.RepayLoan(p, cmd.Amount)
	case CmdTransferFunds:
		err = r.transferFunds(p, cmd.Target, cmd.Amount)
	case CmdTransferDeal:
		err = r.transferDeal(p, cmd.CardID, cmd.Target)
	case CmdDonateCharity:
		err = r.charity(p, true)
	case CmdSkipCharity:
		err = r.charity(p, false)
	case CmdBabyRoll:
		payload, err = r.babyRoll(p)
	case CmdDownsized:
		err = r.downsized(p, DownsizedChoice(cmd.Choice))
	case CmdMLMPlaced:
		err = r.mlmPlaced(p)
	case CmdEndTurn:
		err = r.endTurn(p)
	default:
		err = ErrUnknownCommand
	}

	// sweep after dispatch: a command racing an expiry still finds the offer
	// on the board and gets the expiry rejection instead of an unknown id
	r.sweepExpired()

	if err == nil {
		r.out.Broadcast(r.ID, "state-updated", r.Snapshot())
	} else {
		r.log.WithFields(logrus.Fields{
			"player": p.Name,
			"cmd":    cmd.Type,
			"phase":  r.phase,
		}).Debug(err)
	}
	return result{payload: payload, err: err}
}

func (r *Room) sweepExpired() {
	for _, o := range r.market.SweepExpired(time.Now()) {
		r.journal.Eventf("offer expired: %s", o.Card.Title)
	}
}

func (r *Room) player(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) current() *Player {
	return r.players[r.turnIdx]
}

func (r *Room) deckContent(cmd Command) result {
	d, ok := r.decks[deck.CardKind(cmd.Deck)]
	if !ok {
		return result{err: ErrUnknownCommand}
	}
	return result{payload: d.PeekAll()}
}

// ---- dice and movement

func (r *Room) rollDice(p *Player, diceCount int) (int, error) {
	if r.current() != p {
		return 0, ErrNotYourTurn
	}
	if r.phase != PhaseRoll {
		return 0, ErrWrongPhase
	}
	if diceCount < 1 {
		diceCount = 1
	}
	if diceCount > 2 || (diceCount == 2 && p.CharityTurns == 0) {
		return 0, ErrInvalidAmount
	}
	roll := r.doRoll(p, diceCount)
	return roll, nil
}

func (r *Room) doRoll(p *Player, diceCount int) int {
	roll := 0
	for i := 0; i < diceCount; i++ {
		roll += r.rnd.Intn(6) + 1
	}
	if p.CharityTurns > 0 {
		p.CharityTurns--
	}
	p.Position = (p.Position + roll) % board.Size(p.Ring)
	r.lastRoll = roll
	r.journal.Eventf("%s rolled %d", p.Name, roll)
	r.out.Broadcast(r.ID, "dice-rolled", map[string]interface{}{
		"playerId": p.ID,
		"roll":     roll,
	})
	r.resolveSquare(p)
	return roll
}

func (r *Room) resolveSquare(p *Player) {
	sq := board.SquareAt(p.Ring, p.Position)
	switch sq.Type {
	case board.SquareDeal:
		// explicit pending-choice state: a concrete card is only drawn
		// once the owner picks small or big
		r.phase = PhaseOpportunity

	case board.SquareExpense:
		card := r.decks[deck.Expense].Draw()
		if r.ledger.PayMandatory(p, card) {
			r.phase = PhaseEnd
		} else {
			r.phase = PhaseDownsized
		}

	case board.SquarePayday, board.SquareCashDay:
		if sq.Type == board.SquareCashDay {
			p.Cash += r.rules.FastTrackCashDay
			r.journal.Record(Bank, p.Name, r.rules.FastTrackCashDay, TxPayday, "cashflow day")
		} else {
			r.ledger.Payday(p)
			r.checkEscape(p)
		}
		r.phase = PhaseEnd

	case board.SquareMarket:
		card := r.decks[deck.Market].Draw()
		r.market.Add(card, OfferMarket, p.ID, r.rules.OfferTTL())
		r.journal.Eventf("market: %s", card.Title)
		r.phase = PhaseEnd

	case board.SquareCharity:
		r.phase = PhaseCharity

	case board.SquareDownsized:
		r.phase = PhaseDownsized

	case board.SquareBaby:
		r.phase = PhaseBaby

	case board.SquareBusiness:
		r.openCurrent(p, r.decks[deck.DealBig].Draw())
		r.phase = PhaseAction

	case board.SquareDream:
		if p.DreamIndex == p.Position {
			r.dreamPending = true
			r.phase = PhaseAction
			r.journal.Eventf("%s reached their dream and may buy it for $%d", p.Name, r.rules.DreamCost)
		} else {
			r.phase = PhaseEnd
		}

	case board.SquareLottery:
		if r.rnd.Intn(6)+1 >= 5 {
			p.Cash += r.rules.FastTrackLotteryW
			r.journal.Record(Bank, p.Name, r.rules.FastTrackLotteryW, TxPayday, "lottery win")
			r.journal.Eventf("%s won the lottery", p.Name)
		} else {
			r.journal.Eventf("%s won nothing in the lottery", p.Name)
		}
		r.phase = PhaseEnd

	case board.SquareLoss:
		if r.rules.FastTrackLoss > p.Cash {
			r.phase = PhaseDownsized
		} else {
			p.Cash -= r.rules.FastTrackLoss
			r.journal.Record(p.Name, Bank, r.rules.FastTrackLoss, TxExpense, "business loss")
			r.phase = PhaseEnd
		}

	default:
		r.phase = PhaseEnd
	}
}

// checkEscape promotes a player whose passive income out-earns their
// expenses onto the fast track.
func (r *Room) checkEscape(p *Player) {
	if p.Ring != board.RatRace || p.PassiveIncome() <= r.ledger.Expenses(p) {
		return
	}
	p.Ring = board.FastTrack
	p.Position = 0
	p.LoanBalance = 0
	r.journal.Eventf("%s escaped the rat race", p.Name)
}

// ---- opportunity / deals

func (r *Room) drawDeal(p *Player, choice string) error {
	if r.current() != p {
		return ErrNotYourTurn
	}
	if r.phase != PhaseOpportunity {
		return ErrWrongPhase
	}
	var kind deck.CardKind
	switch choice {
	case "small":
		kind = deck.DealSmall
	case "big":
		kind = deck.DealBig
	default:
		return ErrInvalidAmount
	}
	card := r.decks[kind].Draw()
	r.openCurrent(p, card)
	r.journal.Eventf("%s drew %s", p.Name, card.Title)
	r.phase = PhaseAction
	return nil
}

// openCurrent replaces any private deal the player still controls; at most
// one CURRENT offer exists per turn owner.
func (r *Room) openCurrent(p *Player, card deck.Card) {
	if open := r.market.CurrentFor(p.ID); open != nil {
		r.market.Remove(open.ID)
		r.journal.Eventf("%s let %s pass", p.Name, open.Card.Title)
	}
	r.market.Add(card, OfferCurrent, p.ID, r.rules.OfferTTL())
}

func (r *Room) buyAsset(p *Player, cmd Command) error {
	if r.dreamPending && r.current() == p && (cmd.CardID == "" || cmd.CardID == "dream") {
		return r.buyDream(p)
	}

	offer := r.market.Get(cmd.CardID)
	if offer == nil {
		return ErrUnknownOffer
	}
	if offer.Expired(time.Now()) {
		return ErrExpired
	}
	if offer.Private() && offer.ControllerID != p.ID {
		return ErrNotController
	}

	quantity := cmd.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	card := offer.Card
	if card.MaxQuantity > 0 && quantity > card.MaxQuantity {
		return ErrInvalidAmount
	}
	if !card.Tradable() && quantity != 1 {
		return ErrInvalidAmount
	}
	if !offer.Private() {
		// open market posting: anyone buys at the posted price
		card.Cost = card.OfferPrice
		card.Cashflow = 0
		if card.TargetTitle != "" {
			card.Title = card.TargetTitle
		}
	}

	if err := r.ledger.BuyAsset(p, card, quantity, uuid.NewV4().String()); err != nil {
		return err
	}
	r.market.Remove(offer.ID)

	if offer.Source == OfferCurrent && r.current() == p {
		if card.Outcome == "mlm" {
			r.phase = PhaseMLM
			r.out.Broadcast(r.ID, "mlm-placement", map[string]string{"playerId": p.ID})
		} else {
			r.phase = PhaseEnd
		}
	}
	return nil
}

func (r *Room) buyDream(p *Player) error {
	if r.phase != PhaseAction {
		return ErrWrongPhase
	}
	if r.rules.DreamCost > p.Cash {
		return ErrInsufficientFunds
	}
	p.Cash -= r.rules.DreamCost
	r.journal.Record(p.Name, Bank, r.rules.DreamCost, TxPurchase, "dream purchase")
	r.dreamPending = false
	r.setWinner(p)
	return nil
}

// sellAsset settles a player's holding against a live market offer. Any
// owner of the matching asset may sell, whoever controls the offer. The ref
// may name the offer or the seller's own holding; quantity 0 means the
// whole holding.
func (r *Room) sellAsset(p *Player, ref string, quantity int) error {
	offer := r.market.Get(ref)
	if offer == nil {
		if asset := p.FindAsset(ref); asset != nil {
			offer = r.market.OfferFor(asset)
		}
	}
	if offer == nil {
		return ErrUnknownOffer
	}
	if offer.Expired(time.Now()) {
		return ErrExpired
	}
	if offer.Card.OfferPrice <= 0 {
		return ErrNotOwned
	}
	asset := offer.MatchHolding(p)
	if asset == nil || asset.Quantity == 0 {
		return ErrNotOwned
	}
	if quantity <= 0 {
		quantity = asset.Quantity
	}
	if err := r.ledger.SellAsset(p, asset, quantity, offer.Card.OfferPrice); err != nil {
		return err
	}
	r.market.Remove(offer.ID)
	return nil
}

func (r *Room) transferDeal(p *Player, offerID, targetID string) error {
	offer := r.market.Get(offerID)
	if offer == nil {
		return ErrUnknownOffer
	}
	if offer.Expired(time.Now()) {
		return ErrExpired
	}
	if offer.ControllerID != p.ID {
		return ErrNotController
	}
	target := r.player(targetID)
	if target == nil || target.Bankrupt {
		return ErrUnknownPlayer
	}
	if offer.Source == OfferCurrent && r.market.CurrentFor(target.ID) != nil {
		return ErrInvalidAmount // a player holds at most one private deal
	}
	offer.ControllerID = target.ID // expiry deliberately unchanged
	r.journal.Eventf("%s passed %s to %s", p.Name, offer.Card.Title, target.Name)

	// handing away the blocking deal unblocks the owner's turn
	if r.phase == PhaseAction && r.current() == p && !r.dreamPending {
		r.phase = PhaseEnd
	}
	return nil
}

func (r *Room) transferFunds(p *Player, targetID string, amount int) error {
	target := r.player(targetID)
	if target == nil || target == p {
		return ErrUnknownPlayer
	}
	return r.ledger.Transfer(p, target, amount)
}

// ---- sub-phases

func (r *Room) charity(p *Player, donate bool) error {
	if r.current() != p {
		return ErrNotYourTurn
	}
	if r.phase != PhaseCharity {
		return ErrWrongPhase
	}
	if donate {
		if err := r.ledger.PayCharity(p); err != nil {
			return err
		}
	}
	r.phase = PhaseEnd
	return nil
}

func (r *Room) babyRoll(p *Player) (int, error) {
	if r.current() != p {
		return 0, ErrNotYourTurn
	}
	if r.phase != PhaseBaby {
		return 0, ErrWrongPhase
	}
	roll := r.rnd.Intn(6) + 1
	if p.Children < r.rules.MaxChildren {
		p.Children++
		r.journal.Eventf("%s had a baby, expenses grow by $%d", p.Name, p.PerChildExpense)
	} else {
		r.journal.Eventf("%s rolled for a baby but the house is full", p.Name)
	}
	r.phase = PhaseEnd
	return roll, nil
}

func (r *Room) downsized(p *Player, choice DownsizedChoice) error {
	if r.current() != p {
		return ErrNotYourTurn
	}
	if r.phase != PhaseDownsized {
		return ErrWrongPhase
	}
	if err := r.ledger.Downsized(p, choice); err != nil {
		return err
	}
	r.phase = PhaseEnd
	if p.Bankrupt {
		r.checkLastStanding()
	}
	return nil
}

func (r *Room) mlmPlaced(p *Player) error {
	if r.current() != p {
		return ErrNotYourTurn
	}
	if r.phase != PhaseMLM {
		return ErrWrongPhase
	}
	r.journal.Eventf("%s was placed in the partner program", p.Name)
	r.phase = PhaseEnd
	return nil
}

// ---- turn handover

// endTurn may come from any player once the owner has no blocking action
// left. While an action is still undecided only the owner may walk away from
// it; stalled owners are handled by the turn deadline, not by rivals.
func (r *Room) endTurn(p *Player) error {
	switch r.phase {
	case PhaseEnd:
	case PhaseAction:
		if r.current() != p {
			return ErrNotYourTurn
		}
		if r.dreamPending {
			r.dreamPending = false // the dream stays; the chance does not
		}
	default:
		return ErrWrongPhase
	}
	r.finishTurn()
	return nil
}

func (r *Room) finishTurn() {
	owner := r.current()
	if open := r.market.CurrentFor(owner.ID); open != nil {
		r.market.Remove(open.ID)
		r.journal.Eventf("%s let %s pass", owner.Name, open.Card.Title)
	}
	r.dreamPending = false
	r.out.Broadcast(r.ID, "turn-ended", map[string]string{"playerId": owner.ID})
	r.advanceTurn()
}

func (r *Room) advanceTurn() {
	active := 0
	for _, p := range r.players {
		if !p.Bankrupt {
			active++
		}
	}
	if active == 0 {
		r.Stop()
		return
	}

	for {
		r.turnIdx = (r.turnIdx + 1) % len(r.players)
		next := r.players[r.turnIdx]
		if next.Bankrupt {
			continue
		}
		if next.SkipTurns > 0 {
			next.SkipTurns--
			r.journal.Eventf("%s sits this turn out", next.Name)
			continue
		}
		break
	}
	r.phase = PhaseRoll
	r.deadline = time.Now().Add(r.rules.TurnDeadline())
	r.out.Broadcast(r.ID, "change-turn", r.current().ID)
}

func (r *Room) checkLastStanding() {
	var last *Player
	for _, p := range r.players {
		if !p.Bankrupt {
			if last != nil {
				return
			}
			last = p
		}
	}
	if last != nil {
		r.setWinner(last)
	}
}

func (r *Room) setWinner(p *Player) {
	r.winnerID = p.ID
	r.journal.Eventf("%s wins the game", p.Name)
	r.out.Broadcast(r.ID, "game-over", map[string]string{"winnerId": p.ID})
	r.log.WithField("winner", p.Name).Info("game over")
}

// onDeadline executes the safe default for a stalled turn owner: auto-roll
// in ROLL, auto-resolve any blocking sub-phase, then hand the turn over.
func (r *Room) onDeadline() {
	if r.winnerID != "" || time.Now().Before(r.deadline) {
		return
	}
	r.sweepExpired()
	owner := r.current()

	if r.phase == PhaseRoll {
		r.doRoll(owner, 1)
	}
	switch r.phase {
	case PhaseOpportunity, PhaseCharity, PhaseMLM:
		r.phase = PhaseEnd
	case PhaseBaby:
		r.babyRoll(owner)
	case PhaseDownsized:
		if r.ledger.Downsized(owner, Pay2Month) != nil {
			// cover it the way a mandatory expense is covered, or fold
			need := 2 * r.ledger.Expenses(owner)
			if owner.Ring == board.FastTrack {
				r.ledger.Downsized(owner, GoBankrupt)
				r.checkLastStanding()
			} else {
				r.ledger.forceLoan(owner, need-owner.Cash)
				r.ledger.Downsized(owner, Pay2Month)
			}
		}
		r.phase = PhaseEnd
	}
	if r.winnerID != "" {
		return
	}
	r.finishTurn()
	r.out.Broadcast(r.ID, "state-updated", r.Snapshot())
}
