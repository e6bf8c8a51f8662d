package model

// BlobRef refers to bytes directly or to an archived spend by CID.
// Exactly one of CID or Bytes MUST be set.
//
// JSON note: Bytes are encoded as base64 by encoding/json.
type BlobRef struct {
	CID   string `json:"cid,omitempty"`
	Bytes []byte `json:"bytes,omitempty"`
}

type ComplianceMode string

const (
	CompliancePermissive ComplianceMode = "permissive"
	ComplianceStrict     ComplianceMode = "strict"
)

// ClassifyRequest names a spend either by its two serialized halves or by the CID
// of an archived (puzzle . solution) pair.
type ClassifyRequest struct {
	Puzzle     []byte         `json:"puzzle,omitempty"`
	Solution   []byte         `json:"solution,omitempty"`
	Spend      BlobRef        `json:"spend,omitempty"`
	Compliance ComplianceMode `json:"compliance,omitempty"`
}

// SpendReport is the allocator-independent projection of a classified spend.
// Exactly one of the detail fields is set, matching Shape.
type SpendReport struct {
	Shape        string        `json:"shape"`
	Version      uint8         `json:"version,omitempty"`
	Layers       []LayerReport `json:"layers"`
	PuzzleHash   string        `json:"puzzleHash"`
	SolutionHash string        `json:"solutionHash"`

	Standard *StandardReport `json:"standard,omitempty"`
	CAT      *CATReport      `json:"cat,omitempty"`
	NFT      *NFTReport      `json:"nft,omitempty"`
	DID      *DIDReport      `json:"did,omitempty"`
}

// LayerReport describes one recognised layer, outermost first.
type LayerReport struct {
	Name         string `json:"name"`
	Shape        string `json:"shape"`
	Version      uint8  `json:"version,omitempty"`
	TemplateHash string `json:"templateHash"`
}

type StandardReport struct {
	SyntheticKey        string `json:"syntheticKey"`
	OriginalPublicKey   string `json:"originalPublicKey,omitempty"`
	DelegatedPuzzleHash string `json:"delegatedPuzzleHash"`
	SolutionHash        string `json:"solutionHash"`
}

type Coin struct {
	ParentCoinInfo string `json:"parentCoinInfo"`
	PuzzleHash     string `json:"puzzleHash"`
	Amount         uint64 `json:"amount"`
}

type CoinProof struct {
	ParentCoinInfo  string `json:"parentCoinInfo"`
	InnerPuzzleHash string `json:"innerPuzzleHash"`
	Amount          uint64 `json:"amount"`
}

type LineageProof struct {
	ParentParentCoinID    string `json:"parentParentCoinID"`
	ParentInnerPuzzleHash string `json:"parentInnerPuzzleHash,omitempty"`
	ParentAmount          uint64 `json:"parentAmount"`
	Eve                   bool   `json:"eve,omitempty"`
}

type CATReport struct {
	ModHash           string        `json:"modHash"`
	TailProgramHash   string        `json:"tailProgramHash"`
	InnerPuzzleHash   string        `json:"innerPuzzleHash"`
	InnerSolutionHash string        `json:"innerSolutionHash"`
	LineageProof      *LineageProof `json:"lineageProof,omitempty"`
	PrevCoinID        string        `json:"prevCoinID"`
	ThisCoin          Coin          `json:"thisCoin"`
	NextCoinProof     CoinProof     `json:"nextCoinProof"`
	PrevSubtotal      int64         `json:"prevSubtotal"`
	ExtraDelta        int64         `json:"extraDelta"`
}

type SingletonReport struct {
	ModHash            string       `json:"modHash"`
	LauncherID         string       `json:"launcherID"`
	LauncherPuzzleHash string       `json:"launcherPuzzleHash"`
	LineageProof       LineageProof `json:"lineageProof"`
	Amount             uint64       `json:"amount"`
}

type NFTMetadata struct {
	EditionNumber uint64   `json:"editionNumber"`
	EditionTotal  uint64   `json:"editionTotal"`
	DataURIs      []string `json:"dataURIs,omitempty"`
	DataHash      string   `json:"dataHash,omitempty"`
	MetadataURIs  []string `json:"metadataURIs,omitempty"`
	MetadataHash  string   `json:"metadataHash,omitempty"`
	LicenseURIs   []string `json:"licenseURIs,omitempty"`
	LicenseHash   string   `json:"licenseHash,omitempty"`
}

type NFTReport struct {
	Singleton                 SingletonReport `json:"singleton"`
	Metadata                  NFTMetadata     `json:"metadata"`
	MetadataUpdaterPuzzleHash string          `json:"metadataUpdaterPuzzleHash"`
	CurrentOwner              string          `json:"currentOwner,omitempty"`
	TransferProgramHash       string          `json:"transferProgramHash"`
	RoyaltyPuzzleHash         string          `json:"royaltyPuzzleHash"`
	RoyaltyBasisPoints        uint16          `json:"royaltyBasisPoints"`
	InnerPuzzleHash           string          `json:"innerPuzzleHash"`
	InnerSolutionHash         string          `json:"innerSolutionHash"`
}

type DIDReport struct {
	Singleton                SingletonReport `json:"singleton"`
	RecoveryListHash         string          `json:"recoveryListHash,omitempty"`
	NumVerificationsRequired uint64          `json:"numVerificationsRequired"`
	MetadataHash             string          `json:"metadataHash"`
	InnerPuzzleHash          string          `json:"innerPuzzleHash"`
	InnerSolutionHash        string          `json:"innerSolutionHash"`
}

// ArchiveResult is returned when a spend is stored.
type ArchiveResult struct {
	CID    string       `json:"cid"`
	Report *SpendReport `json:"report,omitempty"`
}
