package puzzles

import "xdao.co/spendclass/clvm"

// Mainnet template hashes. These values are a compatibility surface: they identify
// historical on-chain puzzles and must never be edited.
var (
	StandardPuzzleHash           = clvm.MustParseBytes32("e9aaa49f45bad5c889b86ee3341550c155cfdd10c3a6757de618d20612fffd52")
	CATPuzzleHashV1              = clvm.MustParseBytes32("72dec062874cd4d3aab892a0906688a1ae412b0109982e1797a170add88bdcdc")
	CATPuzzleHashV2              = clvm.MustParseBytes32("37bef360ee858133b69d595a906dc45d01af50379dad515eb9518abb7c1d2a7a")
	SingletonTopLayerPuzzleHash  = clvm.MustParseBytes32("7faa3253bfddd1e0decb0906b2dc6247bbc4cf608f58345d173adb63e8b47c9f")
	SingletonLauncherPuzzleHash  = clvm.MustParseBytes32("eff07522495060c066f66f32acc2a77e3a3e737aca8baea4d1a64ea4cdc13da9")
	DIDInnerPuzzleHash           = clvm.MustParseBytes32("33143d2bef64f14036742673afd158126b94284b4530a28c354fac202b0c910e")
	NFTStateLayerPuzzleHash      = clvm.MustParseBytes32("a04d9f57764f54a43e4030befb4d80026e870519aaa66334aef8304f5d0393c2")
	NFTOwnershipLayerPuzzleHash  = clvm.MustParseBytes32("c5abea79afaa001b5427dfa0c8cf42ca6f38f5841b78f9b3c252733eb2de2726")
	NFTRoyaltyTransferPuzzleHash = clvm.MustParseBytes32("025dee0fb1e9fa110302a7e9bfb6e381ca09618e2778b0184fa5c6b275cfce1f")
	NFTMetadataUpdaterPuzzleHash = clvm.MustParseBytes32("fe8a4b4e27a2e29a4d3fc7ce9d527adbcaccbab6ada3903ccf3ba9a769d2d78b")
)
