package utils

import "time"

//UploadPrefix marks files staged by the server in its temp directory, only those are ever swept
const UploadPrefix = "footscout-upload-"

//StaleUploadAge is the age after which a leftover staged upload is considered abandoned
const StaleUploadAge = 10 * time.Minute

//DefaultJerseyNumber is the label used when a request does not name one
const DefaultJerseyNumber = "7"

//AnnotatedExt is the extension of annotated output videos
const AnnotatedExt = ".avi"
