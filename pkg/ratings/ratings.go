package ratings

/**
* Ratings is a golang library for turning a chronological list of international
* football results into Elo-style team ratings and per-match feature tables
* suitable for training a result classifier
 */
