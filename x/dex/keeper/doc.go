// Package keeper implements the dex module keeper: a constant-product AMM
// made of a factory, any number of pairs and a stateless router.
//
// # Core Functionality
//
// Factory: creates one pair per unordered token set at a deterministic
// address, tracks criteria coins (quote coins that always take the token1
// slot) and the protocol fee recipient.
//
// Pairs: hold the reserves of two tokens, mint and burn LP shares, execute
// swaps under the fee-adjusted constant product and accumulate UQ112x112
// price oracles. Every pair is also an LP token with approvals and
// signature-based permits.
//
// Router: deposits, withdrawals and multi-hop swaps with slippage bounds and
// deadlines, including native coin variants that wrap through the wrapped
// native token and variants for tokens that take a fee on transfer.
//
// # Atomicity
//
// Every mutating entry point runs on a cached branch of the store and only
// commits when it succeeds. Pair operations additionally hold a per-pair lock
// so a flash swap callee cannot re-enter the pair it is borrowing from.
//
// # Usage Patterns
//
// Creating a pair:
//
//	pair, err := keeper.CreatePair(ctx, sender, tokenA, tokenB, "", "")
//
// Swapping through the router:
//
//	resp, err := keeper.SwapExactTokensForTokens(ctx, types.MsgSwapExactTokensForTokens{...})
package keeper
