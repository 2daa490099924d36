// Package fifotax computes, for a brokerage portfolio exported from
// PortfolioPerformance, which purchase lots are still held under a
// First-In-First-Out discipline and what German capital-gains tax would be
// due if they were sold at the latest known quote.
//
// The core functionalities include:
//   - Lot Ledger: folding Buy, InboundDelivery, OutboundTransfer and Sell
//     transactions, in chronological order, into per account and per
//     security FIFO queues of lots.
//   - VAP Allocation: spreading the yearly Vorabpauschale (advance lump-sum
//     taxation) of a fund over the lots that existed during that year, pro
//     rata temporis in the purchase year.
//   - Tax Netting: carrying gains and losses forward along the FIFO order of
//     a security so that a loss is only refunded against prior gains.
//   - Tax Factor: KESt, Soli and the optional church tax.
//
// This package is the foundation of the `fifotax` command-line tool. Input
// parsing lives in package pp, Excel output in package xlsx and markdown
// output in package renderer.
package fifotax
