package deck

// Static deck definitions. Card ids are assigned on draw; the tables only
// carry gameplay data.

var smallDeals = []Card{
	{Kind: DealSmall, Title: "OK4U Drug Co.", Description: "Biotech startup shares. High risk, no dividend.", Cost: 10, Symbol: "OK4U", MaxQuantity: 1000},
	{Kind: DealSmall, Title: "MYT4U Electric Co.", Description: "Utility stock trading near its historic low.", Cost: 5, Symbol: "MYT4U", MaxQuantity: 1000},
	{Kind: DealSmall, Title: "ON2U Entertainment", Description: "Streaming stock after a bad quarter.", Cost: 20, Symbol: "ON2U", MaxQuantity: 500},
	{Kind: DealSmall, Title: "GRO4US Fund", Description: "Index fund units, slow but steady.", Cost: 30, Symbol: "GRO4US", MaxQuantity: 500},
	{Kind: DealSmall, Title: "Condo for rent 2Br/1Ba", Description: "Small condo, tenant in place.", Cost: 4000, Cashflow: 140},
	{Kind: DealSmall, Title: "Room rental", Description: "Rent out a room in a shared house.", Cost: 2000, Cashflow: 80},
	{Kind: DealSmall, Title: "Vending route", Description: "Four snack machines downtown.", Cost: 3000, Cashflow: 100},
	{Kind: DealSmall, Title: "Mobile home 3Br", Description: "Older mobile home, reliable renter.", Cost: 5000, Cashflow: 220},
	{Kind: DealSmall, Title: "Land 10 acres", Description: "Raw land, no income until resold.", Cost: 5000, Cashflow: 0},
	{Kind: DealSmall, Title: "Car wash share", Description: "Minority stake in a coin car wash.", Cost: 6000, Cashflow: 180},
}

var bigDeals = []Card{
	{Kind: DealBig, Title: "Apartment house 4-plex", Description: "Four units, fully rented.", Cost: 32000, Cashflow: 800},
	{Kind: DealBig, Title: "Apartment house 8-plex", Description: "Eight units, needs a manager.", Cost: 60000, Cashflow: 1700},
	{Kind: DealBig, Title: "3Br/2Ba house", Description: "Single family rental in a good district.", Cost: 35000, Cashflow: 400},
	{Kind: DealBig, Title: "Limo service", Description: "Two cars and standing airport contracts.", Cost: 50000, Cashflow: 1500},
	{Kind: DealBig, Title: "Laundromat", Description: "Established coin laundry.", Cost: 40000, Cashflow: 1100},
	{Kind: DealBig, Title: "Mini storage", Description: "60 storage units at the highway.", Cost: 45000, Cashflow: 1300},
	{Kind: DealBig, Title: "Pizza franchise", Description: "Franchise license plus equipment.", Cost: 70000, Cashflow: 2000},
	{Kind: DealBig, Title: "Network marketing tier", Description: "Buy into a distributor tier; placement handled by the partner program.", Cost: 25000, Cashflow: 600, Outcome: "mlm"},
}

var expenseCards = []Card{
	{Kind: Expense, Title: "New TV", Description: "The old one died mid-season.", Cost: 800, Mandatory: true},
	{Kind: Expense, Title: "Car repair", Description: "Transmission went out.", Cost: 1200, Mandatory: true},
	{Kind: Expense, Title: "Dental work", Description: "Root canal, not covered.", Cost: 1500, Mandatory: true},
	{Kind: Expense, Title: "Family vacation", Description: "A week at the lake.", Cost: 2000, Mandatory: true},
	{Kind: Expense, Title: "Boat tow fee", Description: "The boat needs towing. Again.", Cost: 600, Mandatory: true},
	{Kind: Expense, Title: "New phone", Description: "Screen shattered beyond repair.", Cost: 500, Mandatory: true},
	{Kind: Expense, Title: "Roof leak", Description: "Emergency patch before the rains.", Cost: 2500, Mandatory: true},
}

var marketCards = []Card{
	{Kind: Market, Title: "OK4U spikes", Description: "Trial results leak; OK4U trades at $40.", Symbol: "OK4U", OfferPrice: 40, Outcome: "Holders may sell at $40 per share."},
	{Kind: Market, Title: "MYT4U rally", Description: "Utility sector rally; MYT4U at $30.", Symbol: "MYT4U", OfferPrice: 30, Outcome: "Holders may sell at $30 per share."},
	{Kind: Market, Title: "ON2U buyout rumor", Description: "ON2U bid rumored at $45.", Symbol: "ON2U", OfferPrice: 45, Outcome: "Holders may sell at $45 per share."},
	{Kind: Market, Title: "Condo buyer", Description: "Out-of-town buyer wants small condos.", TargetTitle: "Condo for rent 2Br/1Ba", OfferPrice: 9000, Outcome: "Owners may sell for $9,000."},
	{Kind: Market, Title: "House hunter", Description: "Buyer offers top price for 3Br/2Ba houses.", TargetTitle: "3Br/2Ba house", OfferPrice: 65000, Outcome: "Owners may sell for $65,000."},
	{Kind: Market, Title: "Plex investor", Description: "REIT collecting 4-plexes.", TargetTitle: "Apartment house 4-plex", OfferPrice: 50000, Outcome: "Owners may sell for $50,000."},
	{Kind: Market, Title: "Land developer", Description: "Developer assembling acreage.", TargetTitle: "Land 10 acres", OfferPrice: 15000, Outcome: "Owners may sell for $15,000."},
}
