package utils

//AllowedVideoExtensions are the upload formats accepted when video.allowed_extensions is not configured
var AllowedVideoExtensions = []string{"mp4", "avi", "mov"}

//DefaultPlayerOneHeight is the height in meters used when the upload does not give one for player 1
const DefaultPlayerOneHeight = 1.88

//DefaultPlayerTwoHeight is the height in meters used when the upload does not give one for player 2
const DefaultPlayerTwoHeight = 1.91

//MaxUploadSize limits the size of an uploaded video when http.max_upload_size is not configured
const MaxUploadSize = 32 << 20

//DetectionsCacheExt is the extension of file based detection caches
const DetectionsCacheExt = ".cbor"
