// Package ocr reads text out of rendered photos using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). It works on
// in-memory images, so a caller can read text from an edited frame (after
// rotation, crop and color adjustment) without saving it first.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Languages
//
// The default language is English ("eng"). Other languages are selected by
// their Tesseract codes ("deu", "fra", "chi_sim", ...).
package ocr
