package invocation

// Help is the usage text printed for --help.
const Help = `🥕 🐇
wasupdoc

Generate a Document.

Usage:
  wasupdoc --controller /path/to/key.ed25519.ssh
  wasupdoc --controller did:key:z6Mk...
  wasupdoc -h | --help

Options:
  -h --help                    Show this help
  --controller                 Path to SSH key (or a DID) to set as doc.controller
  --passphrase-ssm-parameter   AWS SSM parameter holding the SSH key passphrase
  --ask-passphrase             Prompt for the SSH key passphrase
  --version                    Show the version

Environment:
  WASUPDOC_SSH_PASSPHRASE      Passphrase of an encrypted SSH key`
