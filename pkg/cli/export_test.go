package cli

var (
	PrintReport      = printReport
	LoadDocumentFile = loadDocumentFile
	GetIndexConfig   = getIndexConfig
	UseCaseNames     = useCaseNames
)
