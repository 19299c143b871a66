package http

// VerifySlackSignature exposes the signature check for tests
var VerifySlackSignature = verifySlackSignature
