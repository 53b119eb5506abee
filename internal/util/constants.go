package util

// ArchiveFormat 归档快照文件名中的时间戳
const ArchiveFormat = "20060102T150405Z"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

const (
	MimeCSV  = "text/csv"
	MimeJSON = "application/json"
)

// HeaderRequestID 请求追踪头
const HeaderRequestID = "X-Request-ID"
